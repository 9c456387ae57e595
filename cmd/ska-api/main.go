package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iainkerinci/ska-api/internal/handler"
	appmiddleware "github.com/iainkerinci/ska-api/internal/middleware"
	"github.com/iainkerinci/ska-api/internal/service"
	"github.com/iainkerinci/ska-api/pkg/config"
	"github.com/iainkerinci/ska-api/pkg/logger"
	corsmiddleware "github.com/iainkerinci/ska-api/pkg/middleware/cors"
	reqidmiddleware "github.com/iainkerinci/ska-api/pkg/middleware/requestid"
	"github.com/iainkerinci/ska-api/pkg/render"
	"github.com/iainkerinci/ska-api/pkg/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	periodSvc := service.NewPeriodService(nil)
	renderer := render.NewDocxRenderer(cfg.Template.Path)
	bot := telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.Token, &http.Client{Timeout: cfg.Telegram.Timeout})
	notifierSvc := service.NewNotifierService(bot, cfg.Telegram.ChatID, logr, metricsSvc)
	submissionSvc := service.NewSubmissionService(periodSvc, renderer, notifierSvc, logr, metricsSvc)

	submissionHandler := handler.NewSubmissionHandler(submissionSvc, periodSvc, cfg.Uploads.MaxFileSizeBytes)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appmiddleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes
	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/", submissionHandler.FormPage)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group("/api/v1")
	api.GET("/period", submissionHandler.Period)
	api.POST("/submissions", submissionHandler.Submit)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
