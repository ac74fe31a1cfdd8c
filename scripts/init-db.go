package main

import (
	"fmt"
	"log"
	"os"

	"donerci/internal/config"
	"donerci/internal/database"
	"donerci/internal/logging"
	"donerci/internal/migrations"

	"github.com/spf13/cobra"
)

func main() {
	if err := newInitDBCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newInitDBCommand() *cobra.Command {
	var (
		drop      bool
		demoItems int
		adminName string
	)

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Migrate the Donerci database and load the sample catalog",
		Long: `init-db creates or updates every table, seeds the administrator named by
ADMIN_EMAIL/ADMIN_PASSWORD and loads the sample restaurants and menu when the
catalog is empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.Environment)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, false)
			if err != nil {
				return err
			}

			if err := migrations.RunMigrations(db, migrations.Options{
				Drop:          drop,
				AdminName:     adminName,
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPassword,
				DemoItems:     demoItems,
				Logger:        logger,
			}); err != nil {
				return fmt.Errorf("database initialization failed: %w", err)
			}

			log.Println("Database initialization completed successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop all tables before migrating")
	cmd.Flags().IntVar(&demoItems, "demo-items", 0, "number of generated demo menu items to add")
	cmd.Flags().StringVar(&adminName, "admin-name", "Admin User", "display name of the seeded administrator")
	return cmd
}
