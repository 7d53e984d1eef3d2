package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage Amazon credentials",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Ensure working Amazon credentials exist for the caller",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ValidateCredentials(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(resp)
			}
			if resp.Data == nil {
				fmt.Println("no credential data returned")
				return nil
			}

			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("User:\t%s\n", resp.Data.UserID)
			tw.writef("Domain:\t%s\n", resp.Data.MarketplaceDomain)
			tw.writef("Expires:\t%s\n", resp.Data.ExpiresAt)
			return tw.finish()
		},
	}

	invalidate := &cobra.Command{
		Use:   "invalidate-cache",
		Short: "Drop the caller's cached credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newClient().InvalidateCredentialCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("cache invalidated")
			return nil
		},
	}

	cmd.AddCommand(validate)
	cmd.AddCommand(invalidate)

	return cmd
}
