package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/db"
)

// DbCmd returns the db command
func DbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local database",
	}

	cmd.AddCommand(dbPathCmd())
	cmd.AddCommand(dbMigrateCmd())
	cmd.AddCommand(dbSeedCmd())

	return cmd
}

func dbPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the SQLite database path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func dbMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := db.GetDB(); err != nil {
				return err
			}
			fmt.Println("✓ Schema is up to date")
			return nil
		},
	}
}

func dbSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with standard festival categories and channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return err
			}
			if err := db.SeedFixtures(database); err != nil {
				return err
			}
			fmt.Println("✓ Catalog seeded")
			return nil
		},
	}
}
