package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/oggyb/smsdev/internal/smsdev"
)

type inboxOptions struct {
	unread     bool
	id         int
	from       string
	to         string
	dateFormat string
	json       bool
}

func newInboxCmd(opts *globalOptions) *cobra.Command {
	var o inboxOptions

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List received messages",
		Long: `List received messages, optionally filtered.

--from and --to are read with --date-format (PHP date() syntax, e.g. "d/m/Y"
or "Y-m-d H:i:s"). Dates that do not match the format are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			if o.dateFormat != "" {
				client.SetDateFormat(o.dateFormat)
			}

			if o.unread {
				client.IsUnread()
			}
			client.ByID(o.id).DateFrom(o.from).DateTo(o.to)

			if err := client.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("inbox failed: %w", err)
			}
			if err := client.ResultError(); err != nil {
				return fmt.Errorf("inbox failed: %w", err)
			}

			msgs := client.Messages()
			if o.json {
				return writeJSON(cmd.OutOrStdout(), msgs)
			}
			writeTable(cmd.OutOrStdout(), msgs)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.unread, "unread", "u", false, "only unread messages")
	f.IntVar(&o.id, "id", 0, "only the message with this id")
	f.StringVar(&o.from, "from", "", "earliest date")
	f.StringVar(&o.to, "to", "", "latest date")
	f.StringVar(&o.dateFormat, "date-format", "", "layout for --from, --to and the output dates (default $SMSDEV_DATE_FORMAT)")
	f.BoolVar(&o.json, "json", false, "print JSON instead of a table")

	return cmd
}

func writeTable(w io.Writer, msgs []smsdev.Message) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Date", "Number", "Message"})

	for _, m := range msgs {
		table.Append([]string{
			strconv.Itoa(m.ID),
			m.Date,
			m.Number,
			truncate(m.Text, 60),
		})
	}

	table.Render()
}

func writeJSON(w io.Writer, msgs []smsdev.Message) error {
	if msgs == nil {
		msgs = []smsdev.Message{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return s
}
