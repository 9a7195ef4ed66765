package main

import (
	"github.com/apoiacoletivo/acs/internal/bridge"
	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/database"
	"github.com/apoiacoletivo/acs/internal/infinitepay"
	"github.com/apoiacoletivo/acs/internal/logger"
	"github.com/apoiacoletivo/acs/internal/router"
	"github.com/apoiacoletivo/acs/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithRotation(logger.ParseLogLevel(cfg.Log.Level), logger.RotationConfig{
			Filename: cfg.Log.File,
			Compress: true,
		})
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	client := infinitepay.NewClient(cfg.InfinitePay)

	// No bridge is injected in the standalone server; contribution attempts
	// fall back to the hosted checkout. Host integrations install theirs
	// through the registry.
	registry := bridge.NewRegistry()
	bridgeAdapter := bridge.NewAdapter(registry.Source(), cfg.Bridge)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(db, client, bridgeAdapter, cfg)

	manager := task.Start(db, cfg)
	defer manager.Stop()

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
