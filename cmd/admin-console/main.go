package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/escola-admin-console/api/swagger"
	"github.com/noah-isme/escola-admin-console/internal/client"
	"github.com/noah-isme/escola-admin-console/internal/controller"
	"github.com/noah-isme/escola-admin-console/internal/handler"
	"github.com/noah-isme/escola-admin-console/internal/middleware"
	"github.com/noah-isme/escola-admin-console/internal/service"
	"github.com/noah-isme/escola-admin-console/pkg/config"
	"github.com/noah-isme/escola-admin-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/escola-admin-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/escola-admin-console/pkg/middleware/requestid"
	"github.com/noah-isme/escola-admin-console/pkg/response"
)

// @title Escola Admin Console
// @version 1.0.0
// @description Server-rendered admin console over the school management API
// @BasePath /
// @schemes http

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

	api := client.New(cfg.SchoolAPI, logr, client.WithObserver(metricsSvc.ObserveUpstreamRequest))

	sessions := controller.NewRegistry(api, controller.RegistryConfig{
		NotificationTTL: cfg.Console.NotificationTTL,
		SessionTTL:      cfg.Console.SessionTTL,
		SweepInterval:   cfg.Console.SessionSweep,
		Logger:          logr,
	})
	sessions.Start(context.Background())
	defer sessions.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.LoadHTMLGlob("web/templates/*.tmpl")
	r.Static("/static", "./web/static")

	r.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	handler.Register(r, sessions, handler.RouteConfig{ExportsEnabled: cfg.Exports.Enabled})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("console starting", "addr", addr, "env", cfg.Env, "school_api", cfg.SchoolAPI.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("console failed", "error", err)
	}
}
