package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"rural-assist/internal/bootstrap"
	"rural-assist/internal/common/camunda"
	"rural-assist/internal/common/config"
	"rural-assist/internal/common/database"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/observability"
	"rural-assist/internal/server/handlers"
	"rural-assist/pkg/registry"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Zeebe job workers",
	Long: `Run every enabled job worker against the configured Zeebe broker.

Each handler must be listed in the activity registry. A small HTTP listener
serves /health, /ready and /metrics for the worker process.`,
	RunE: runWorker,
}

var workerHealthAddr string

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().StringVar(&workerHealthAddr, "health-addr", ":9090", "Listen address for health and metrics")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.ValidateWorkerMode(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cfg)
	obs := observability.New(cfg.App.Name+"-worker", log)
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

	jobHandlers := app.JobHandlers()
	if err := checkRegistry(cfg.Registry.Path, jobHandlers); err != nil {
		return err
	}

	zeebe, err := camunda.NewClient(cfg.Camunda.BrokerAddress)
	if err != nil {
		return err
	}
	defer zeebe.Close()
	log.Info("zeebe client connected", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	workers := startWorkers(cfg, zeebe, jobHandlers, log)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	health := &http.Server{
		Addr:    workerHealthAddr,
		Handler: healthRouter(cfg, append(clients.Pingers(), zeebe)),
	}
	go func() {
		if err := health.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health listener failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("shutdown signal received, stopping workers", map[string]interface{}{"signal": sig.String()})

	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := health.Shutdown(shutdownCtx); err != nil {
		log.Warn("health listener shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("worker process stopped gracefully", nil)
	return nil
}

// checkRegistry fails when a handler has no registry entry.
func checkRegistry(path string, jobHandlers map[string]camunda.JobHandler) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load activity registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("invalid activity registry: %w", err)
	}

	taskTypes := make([]string, 0, len(jobHandlers))
	for taskType := range jobHandlers {
		taskTypes = append(taskTypes, taskType)
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		return fmt.Errorf("handlers missing from activity registry: %s", strings.Join(missing, ", "))
	}
	return nil
}

func startWorkers(cfg *config.Config, zeebe *camunda.Client, jobHandlers map[string]camunda.JobHandler, log logger.Logger) []*camunda.CamundaWorker {
	taskTypes := make([]string, 0, len(jobHandlers))
	for taskType := range jobHandlers {
		taskTypes = append(taskTypes, taskType)
	}
	sort.Strings(taskTypes)

	workers := make([]*camunda.CamundaWorker, 0, len(taskTypes))
	for _, taskType := range taskTypes {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}

		maxJobs := wcfg.MaxJobsActive
		if maxJobs == 0 {
			maxJobs = cfg.Camunda.MaxJobsActive
		}
		w := camunda.NewWorker(zeebe.GetClient(), taskType, maxJobs, config.GetDuration(wcfg.Timeout), jobHandlers[taskType], log)
		w.Start()
		workers = append(workers, w)
	}
	return workers
}

func healthRouter(cfg *config.Config, pingers []database.Pinger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	health := handlers.NewHealthHandler(cfg.App.Name+"-worker", cfg.App.Version, pingers, nil, 5*time.Second)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
