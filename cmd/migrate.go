package cmd

import (
	"fmt"

	"review-api/pkg/database"

	"github.com/spf13/cobra"
)

var printSchema bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if printSchema {
			fmt.Fprint(cmd.OutOrStdout(), database.Schema())
			return nil
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := database.Migrate(cmd.Context(), rt.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		rt.log.Info("Schema applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&printSchema, "print", false, "print the schema instead of applying it")
}
