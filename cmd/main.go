package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"maintbot/internal/config"
	"maintbot/internal/controller"
	"maintbot/internal/handler"
	"maintbot/internal/service"
	"maintbot/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configPath = flag.String("config", "app.yaml", "Path to app configuration file")
	var checkerFile = flag.String("checkers", "", "Path to checker collection file (overrides config)")
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.DebugLevel)
	cfgZap.OutputPaths = []string{"stdout", "all.log"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Override checker file from command line if provided
	if *checkerFile != "" {
		cfg.App.CheckerFile = *checkerFile
	}

	logger.Info("Configuration loaded successfully", zap.Any("config", cfg))

	evaluation, err := service.NewEvaluationService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize evaluation service", zap.Error(err))
	}

	if cfg.Mcp.Enabled {
		mcpServer := mcp.NewCheckerServer(evaluation, cfg, logger)
		mcpServer.Serve()
	}

	submissionController := controller.NewSubmissionController(evaluation, logger)
	router := handler.SetupRouter(submissionController, logger)

	logger.Info("Starting server", zap.Int("port", cfg.App.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
