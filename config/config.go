package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/condovia/reservation/logger"
)

var loadOnce sync.Once

// LoadEnv loads variables from a local .env file if one exists. Deployed
// environments set real environment variables, so a missing file is fine.
func LoadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			if !os.IsNotExist(err) {
				logger.WarnLogger.Warnf("Could not load .env file: %v", err)
			}
			return
		}
		logger.InfoLogger.Info("Environment loaded from .env file")
	})
}
