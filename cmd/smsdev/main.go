package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oggyb/smsdev/internal/config"
	"github.com/oggyb/smsdev/internal/sms"
	"github.com/oggyb/smsdev/internal/smsdev"
)

// globalOptions override the SMSDEV_* environment for a single run.
type globalOptions struct {
	apiKey     string
	timezone   string
	noValidate bool

	// extra is appended to the client options; tests use it to swap the transport.
	extra []smsdev.Option
}

// client builds the gateway client. When no key is configured and stdin is
// a terminal, the key is read without echo.
func (o *globalOptions) client(cmd *cobra.Command) (*smsdev.Client, error) {
	cfg := config.New()

	if o.apiKey != "" {
		cfg.SMSDev.APIKey = o.apiKey
	}
	if cfg.SMSDev.APIKey == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "SmsDev API key: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.SMSDev.APIKey = strings.TrimSpace(string(key))
	}
	if o.timezone != "" {
		cfg.SMSDev.TimeZone = o.timezone
	}
	if o.noValidate {
		cfg.SMSDev.NumberValidation = false
	}

	return sms.NewSmsDevClient(cfg, o.extra...)
}

func main() {
	if err := newRootCmd(&globalOptions{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "smsdev",
		Short: "SmsDev gateway client",
		Long: `smsdev sends SMS, reads the inbox and checks the balance of an SmsDev account.

The API key is taken from --key or $SMSDEV_API_KEY.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.apiKey, "key", "k", "", "SmsDev API key (default $SMSDEV_API_KEY)")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", "", "IANA timezone for dates (default $SMSDEV_TIMEZONE)")
	root.PersistentFlags().BoolVar(&opts.noValidate, "no-validate", false, "skip local Brazilian mobile number validation")

	root.AddCommand(
		newSendCmd(opts),
		newInboxCmd(opts),
		newBalanceCmd(opts),
	)

	return root
}
