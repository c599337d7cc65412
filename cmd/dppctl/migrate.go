// cmd/dppctl/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the record table of the configured store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, records, err := openRecords(cmd.Context())
		if err != nil {
			return err
		}
		if err := records.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Store %q is ready\n", cfg.Store.Backend)
		return nil
	},
}
