package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data into the database",
	Long: `Load users, categories and posts from a YAML fixture file.
Records that already exist are skipped, so the command is safe to run
repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		store, err := db.New(settings)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := store.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Disconnect(ctx)

		if err := seed.Apply(ctx, store, fixture); err != nil {
			return err
		}

		fmt.Println("Seed data applied")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.example.yaml", "YAML fixture file to load")
}
