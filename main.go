// Command pagamentos runs the bill payment API and its maintenance tasks.
//
// @title Pagamentos API
// @version 1.0
// @description Bill payment backend: users, bills, payments, reports and CSV import.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	_ "github.com/user/pagamentos-go/docs" // Generated Swagger docs

	"github.com/user/pagamentos-go/background"
	"github.com/user/pagamentos-go/config"
	"github.com/user/pagamentos-go/csvimport"
	"github.com/user/pagamentos-go/db"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/metrics"
	"github.com/user/pagamentos-go/server"
	"github.com/user/pagamentos-go/store"
	"github.com/user/pagamentos-go/store/memory"
	"github.com/user/pagamentos-go/store/postgres"
)

// bootstrap loads the env files (".env" when none are given) and only then
// configures logging, so LOG_LEVEL may come from them.
func bootstrap(envFiles ...string) *slog.Logger {
	// In production variables are set directly; the .env file is a development aid.
	envErr := godotenv.Load(envFiles...)
	logger := logging.Setup()
	if envErr != nil {
		logger.Warn(".env file not found or error loading it", "error", envErr)
	}
	return logger
}

func main() {
	logger := bootstrap()

	app := &cli.App{
		Name:   "pagamentos",
		Usage:  "bill payment API",
		Action: func(c *cli.Context) error { return serve(c.Context, logger) },
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: func(c *cli.Context) error { return serve(c.Context, logger) },
			},
			{
				Name:  "migrate",
				Usage: "apply or revert database migrations",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply every pending migration",
						Action: func(c *cli.Context) error {
							dsn, err := postgresDSN()
							if err != nil {
								return err
							}
							return db.RunMigrations(dsn)
						},
					},
					{
						Name:  "down",
						Usage: "revert the latest migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to revert"},
						},
						Action: func(c *cli.Context) error {
							dsn, err := postgresDSN()
							if err != nil {
								return err
							}
							return db.RollbackMigrations(dsn, c.Int("steps"))
						},
					},
				},
			},
			{
				Name:  "import",
				Usage: "create bills from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "path to the CSV file"},
				},
				Action: func(c *cli.Context) error { return importFile(c.Context, logger, c.String("file")) },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func postgresDSN() (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.StorageBackend != config.StoragePostgres {
		return "", fmt.Errorf("migrations need STORAGE_BACKEND=%s", config.StoragePostgres)
	}
	return db.DSN(cfg.Database), nil
}

// openStore connects the configured Account Store backend.
func openStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (store.Store, error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("using the in-memory store, data is lost on exit")
		return memory.New(), nil
	}

	if cfg.Database.MigrateOnStart {
		if err := db.RunMigrations(db.DSN(cfg.Database)); err != nil {
			return nil, err
		}
	}
	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return postgres.New(pool), nil
}

func serve(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	handler := server.NewRouter(server.Deps{
		Config:  cfg,
		Store:   st,
		Logger:  logger,
		Metrics: m,
	})

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	monitorDone := background.NewDueMonitor(st, m, logger, *cfg.Monitor, nil).Start(monitorCtx)
	defer func() {
		stopMonitor()
		<-monitorDone
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("server shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func importFile(ctx context.Context, logger *slog.Logger, path string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := csvimport.NewImporter(st, logger).Import(ctx, f.Name(), f)
	if err != nil {
		return err
	}
	logger.Info("bills imported", "file", path, "count", n)
	return nil
}
