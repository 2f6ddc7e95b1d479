package utils

import (
	"log"

	"github.com/YarKhan02/Workshop-sub000/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "workshop-bff"

// Logger is the process-wide logger, also installed as zap.L().
var Logger *zap.Logger

// InitializeLogger builds JSON logs at LOG_LEVEL in production and colored
// debug logs everywhere else.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(config.AppConfig.LogLevel))
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := cfg.Build(zap.Fields(
		zap.String("service", serviceName),
		zap.String("env", config.GetEnv()),
	))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = built
	zap.ReplaceGlobals(Logger)
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
