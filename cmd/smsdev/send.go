package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCmd(opts *globalOptions) *cobra.Command {
	var refer string

	cmd := &cobra.Command{
		Use:   "send <number> <message>",
		Short: "Send an SMS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			if err := client.Send(cmd.Context(), args[0], args[1], refer); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Message to %s queued.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&refer, "refer", "", "reference echoed back by the gateway")

	return cmd
}
