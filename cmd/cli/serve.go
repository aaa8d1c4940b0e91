package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rural-assist/internal/bootstrap"
	"rural-assist/internal/common/config"
	"rural-assist/internal/common/database"
	"rural-assist/internal/common/observability"
	"rural-assist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
- /api/v1/chat/ask and /api/v1/chat/intents
- /api/v1/survey/* when PostgreSQL is configured
- /health, /health/status, /ready and /metrics`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "release", "Server mode (debug, release, test)")
	serveCmd.Flags().String("log-level", "", "Log level override")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	overrideConfigWithFlags(cmd, cfg)

	log := newLogger(cfg)
	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx := context.Background()
	clients, err := bootstrap.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer clients.Close()

	if err := clients.WaitReady(ctx, database.DefaultRetryPolicy(), log); err != nil {
		return fmt.Errorf("backing stores not ready: %w", err)
	}

	app, err := bootstrap.New(cfg, clients, obs, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	srv := server.New(cfg, app, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("shutdown signal received", map[string]interface{}{"signal": sig.String()})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully", nil)
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
}
