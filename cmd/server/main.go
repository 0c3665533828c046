package main

import (
	"flag"
	"fmt"

	"github.com/antonelli94/Pinguino/internal/api"
	"github.com/antonelli94/Pinguino/internal/config"
	"github.com/antonelli94/Pinguino/internal/game"
	"github.com/antonelli94/Pinguino/internal/middleware"
	"github.com/antonelli94/Pinguino/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Load Config
	config.LoadConfig(configPath)

	// 2. Init Logger
	logger.InitLogger(config.GlobalConfig.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Starting server...", zap.String("mode", config.GlobalConfig.Server.Mode))

	// 3. Init Room Registry
	rooms := game.NewRegistry(game.Policy{
		ReservedAdminName: config.GlobalConfig.Table.ReservedAdminName,
		DefaultAnte:       config.GlobalConfig.Table.DefaultAnte,
	})

	// 4. Init Router
	if config.GlobalConfig.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog())

	api.RegisterRoutes(r, rooms, config.GlobalConfig.Table.DefaultAnte)

	// 5. Start Server
	addr := fmt.Sprintf(":%s", config.GlobalConfig.Server.Port)
	logger.Log.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
