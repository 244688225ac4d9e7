package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once      sync.Once
	loadedEnv string
)

// LoadEnv loads variables from a .env file in the working directory or its parent,
// once per process. Variables already set in the environment are kept. It returns the
// file that was loaded, or "" when none was found.
func LoadEnv() string {
	once.Do(func() {
		loadedEnv, _ = loadEnvFile(".env", filepath.Join("..", ".env"))
	})
	return loadedEnv
}

// loadEnvFile loads the first existing candidate.
func loadEnvFile(candidates ...string) (string, error) {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", err
		}
		return envFile, nil
	}
	return "", nil
}

// GetEnv gets an environment variable with an optional default value
func GetEnv(key string, defaultValue ...string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}
