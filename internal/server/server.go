// internal/server/server.go
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rural-assist/internal/bootstrap"
	"rural-assist/internal/common/config"
	"rural-assist/internal/common/database"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/server/handlers"
	answerquestion "rural-assist/internal/workers/chat/answer-question"
)

// Deps are the components the routes serve. Survey routes are only
// registered when both survey components are present.
type Deps struct {
	Service        string
	Version        string
	Answerer       handlers.Answerer
	Intents        []answerquestion.IntentInfo
	Submitter      handlers.SurveySubmitter
	Reader         handlers.SurveyReader
	Pingers        []database.Pinger
	Upstream       handlers.UpstreamChecker
	RequestTimeout time.Duration
	Logger         logger.Logger
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logger.Logger
}

// New builds the HTTP server for a wired application.
func New(cfg *config.Config, app *bootstrap.App, log logger.Logger) *Server {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	deps := Deps{
		Service:        cfg.App.Name,
		Version:        cfg.App.Version,
		Answerer:       app.Orchestrator,
		Intents:        app.SupportedIntents(),
		Pingers:        app.Clients.Pingers(),
		Upstream:       app.APIClient,
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
		Logger:         log,
	}
	if app.SubmitSurvey != nil && app.SurveyStats != nil {
		deps.Submitter = app.SubmitSurvey
		deps.Reader = app.SurveyStats
	}

	router := NewRouter(deps)
	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      router,
			ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		},
		logger: log,
	}
}

// NewRouter registers every route on a fresh engine.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(deps.Logger))
	if deps.RequestTimeout > 0 {
		router.Use(requestTimeout(deps.RequestTimeout))
	}

	timeout := deps.RequestTimeout
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	health := handlers.NewHealthHandler(deps.Service, deps.Version, deps.Pingers, deps.Upstream, timeout)
	router.GET("/health", health.HealthCheck)
	router.GET("/health/status", health.Status)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	chat := handlers.NewChatHandler(deps.Answerer, deps.Intents, deps.Logger)
	chatGroup := v1.Group("/chat")
	chatGroup.POST("/ask", chat.Ask)
	chatGroup.GET("/intents", chat.Intents)

	if deps.Submitter != nil && deps.Reader != nil {
		survey := handlers.NewSurveyHandler(deps.Submitter, deps.Reader, deps.Logger)
		surveyGroup := v1.Group("/survey")
		surveyGroup.POST("/start", survey.Start)
		surveyGroup.POST("/submit", survey.Submit)
		surveyGroup.GET("/stats", survey.Stats)
		surveyGroup.GET("/recent", survey.Recent)
		surveyGroup.GET("/export", survey.Export)
	}

	return router
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down", nil)
	return s.httpServer.Shutdown(ctx)
}
