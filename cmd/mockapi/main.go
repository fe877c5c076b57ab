package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/codemonk/internal/logging"
	"github.com/dmitrijs2005/codemonk/internal/mockapi"
	"github.com/dmitrijs2005/codemonk/internal/mockapi/config"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := mockapi.New(cfg, mockapi.WithLogger(logger))
	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "mock API server stopped", "error", err)
		os.Exit(1)
	}

}
