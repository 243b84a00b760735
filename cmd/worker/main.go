package main

import (
	"os"

	"go-texerp/internal/app"
	"go-texerp/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
