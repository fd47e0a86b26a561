package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"obra_presupuestos/internal/adapter/http/routes"
	"obra_presupuestos/internal/config"
	"obra_presupuestos/internal/infrastructure/database"
	"obra_presupuestos/internal/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           Obra Presupuestos API
// @version         1.0
// @description     Budgets, invoices and client responses for construction jobs.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Construction budgets and invoices service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, err := database.ConnectPostgres(cmd.Context(), cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateUp(db); err != nil {
			return err
		}
		logger.Info("[app] migrations applied")
		return nil
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a budget request offline and print the email",
	Long: `Price a budget request against the catalog in the same file, without
storage or outbound services.

The file holds {"catalog": [services...], "budget": {budget request}}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		return runQuote(cmd.Context(), cfg, f, cmd.OutOrStdout(), asJSON)
	},
}

func init() {
	quoteCmd.Flags().StringP("file", "f", "", "quote request file (JSON)")
	quoteCmd.Flags().Bool("json", false, "print the whole preview as JSON")
	_ = quoteCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(serveCmd, migrateCmd, quoteCmd)
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func serve(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := routes.Run(ctx, cfg, logger); err != nil {
		logger.Error("[app] failed to startup the application", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
