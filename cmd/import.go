package cmd

import (
	"fmt"
	"sort"

	"review-api/internal/data/repository"
	"review-api/internal/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV fixtures (users, category, genre, titles, genre_title, review, comments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		repos := repository.NewRepository(rt.db, rt.log)

		stats, err := importer.New(repos, rt.log).Run(cmd.Context(), importDir)
		if err != nil {
			rt.log.Error("Import aborted", zap.Error(err))
			return fmt.Errorf("import: %w", err)
		}

		files := make([]string, 0, len(stats))
		for file := range stats {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d rows\n", file, stats[file])
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importDir, "dir", "d", "static/data", "directory holding the CSV files")
}
