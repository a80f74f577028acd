package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Helper to get float64 env with default
func getEnvAsFloat64(key string, fallback float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	val, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.Warnf("Invalid float for %s=%q, using default %g", key, valueStr, fallback)
		return fallback
	}
	return val
}

// Helper to get int env with default
func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	val, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer for %s=%q, using default %d", key, valueStr, fallback)
		return fallback
	}
	return val
}
