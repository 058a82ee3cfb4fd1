package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"employee_directory/config"
	"employee_directory/handlers"
	"employee_directory/services"
	"employee_directory/store"
	"employee_directory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serveOptions struct {
	port     string
	seedFile string
}

func bindServeFlags(c *cobra.Command, opts *serveOptions) {
	c.Flags().StringVarP(&opts.port, "port", "p", "", "Port to listen on (overrides PORT)")
	c.Flags().StringVar(&opts.seedFile, "seed-file", "", "YAML fixture to load before serving (overrides SEED_FILE)")
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	bindServeFlags(c, &opts)
	return c
}

func (o serveOptions) apply(cfg *config.Config) {
	if o.port != "" {
		cfg.Port = o.port
	}
	if o.seedFile != "" {
		cfg.SeedFile = o.seedFile
	}
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts.apply(&cfg)
	defer func() { _ = utils.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg)
	if err != nil {
		utils.Logger.Error("Failed to open database", zap.Error(err))
		return err
	}
	defer closeDB(db)

	app, err := buildApp(ctx, cfg, db)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		utils.Logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			utils.Logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	utils.Logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.Strings("prefixes", cfg.APIPrefixes))
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Error("Server stopped", zap.Error(err))
		return err
	}
	return nil
}

// buildApp wires stores, services and routes over db, seeding first when a
// seed file is configured.
func buildApp(ctx context.Context, cfg config.Config, db *gorm.DB) (*fiber.App, error) {
	employees := store.NewEmployeeStore(db)
	compensations := store.NewCompensationStore(db, employees)

	if cfg.SeedFile != "" {
		if _, err := seedFrom(ctx, employees, cfg.SeedFile); err != nil {
			return nil, err
		}
	}

	calculator := services.NewReportingStructureCalculator(employees, cfg.ReportWorkers)
	handlers.InitHandlers(services.NewEmployeeDirectory(employees, compensations, calculator))
	return handlers.NewApp(cfg.APIPrefixes), nil
}

func seedFrom(ctx context.Context, employees *store.EmployeeStore, path string) (store.SeedResult, error) {
	sf, err := store.LoadSeedFile(path)
	if err != nil {
		return store.SeedResult{}, err
	}

	res, err := store.NewSeeder(employees).Seed(ctx, sf)
	if err != nil {
		utils.Logger.Error("Seeding failed", zap.String("file", path), zap.Error(err))
		return res, fmt.Errorf("seed %s: %w", path, err)
	}

	utils.Logger.Info("Seed file loaded",
		zap.String("file", path),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		utils.Logger.Warn("Failed to close database", zap.Error(err))
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
