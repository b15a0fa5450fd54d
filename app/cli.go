package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sushihentaime/recipehub/internal/common"
)

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "recipehub",
		Short:        "recipehub serves the recipe hub API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the .env config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server and the background consumers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(configPath)
			},
		},
		newMigrateCommand(&configPath),
	)

	return root
}

func serve(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	return run(cfg)
}

func newMigrateCommand(configPath *string) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			dsn := common.DBConfig{
				Host:     cfg.DBHost,
				Port:     cfg.DBPort,
				User:     cfg.DBUser,
				Password: cfg.DBPassword,
				Name:     cfg.DBName,
			}.DSN()

			up := args[0] == "up"
			if err := common.Migrate(source, dsn, up); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s applied\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "path", "file://migrations", "migration source URL")

	return cmd
}
