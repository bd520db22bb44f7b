package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBalanceCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the remaining SMS credit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			balance, err := client.Balance(cmd.Context())
			if err != nil {
				return fmt.Errorf("balance failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", balance)
			return nil
		},
	}
}
