package cli

import (
	"errors"
	"os"

	"employee_directory/config"
	"employee_directory/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:          "employee-directory",
		Short:        "Employee directory and reporting structure service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	bindServeFlags(cmd, &opts)

	cmd.AddCommand(serveCmd(), seedCmd())
	return cmd
}

// loadConfig reads configuration and brings up the process logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	envMissing := errors.Is(err, config.ErrEnvFileMissing)
	if err != nil && !envMissing {
		return config.Config{}, err
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		return config.Config{}, err
	}
	if envMissing {
		utils.Logger.Warn(config.ErrEnvFileMissing.Error())
	}

	utils.Logger.Debug("Configuration loaded",
		zap.String("db_driver", cfg.DBDriver),
		zap.Int("report_workers", cfg.ReportWorkers),
		zap.Strings("api_prefixes", cfg.APIPrefixes))
	return cfg, nil
}
