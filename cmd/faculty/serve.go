package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/config"
	"github.com/kfs-ai/faculty-web/internal/logging"
	"github.com/kfs-ai/faculty-web/internal/server"
	"github.com/kfs-ai/faculty-web/internal/version"
)

func newServeCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the website",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.Load(configDir)
			if err != nil {
				return err
			}
			cfg := manager.Get()

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("starting",
				zap.String("app", cfg.App.Name),
				zap.String("env", cfg.App.Env),
				zap.String("version", version.GetInfo().String()))

			// Only the log level applies without a restart.
			err = manager.Watch(func(next *config.Config) {
				if err := logger.SetLevel(next.Logging.Level); err != nil {
					logger.Warn("config reload", zap.Error(err))
					return
				}
				logger.Info("config reloaded", zap.String("log_level", next.Logging.Level))
			}, func(err error) {
				logger.Warn("config reload rejected", zap.Error(err))
			})
			if err != nil {
				logger.Warn("config changes will need a restart", zap.Error(err))
			}
			defer func() { _ = manager.Close() }()

			srv, err := server.New(cfg, logger.Logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configDir, "config", "c", "configs", "directory holding default.yaml and config.yaml")
	return cmd
}
