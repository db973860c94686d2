package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pulse/internal/app/server"
	"pulse/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	if err := server.Run(cfg); err != nil {
		logrus.WithError(err).Fatal("server failed")
	}
}
