package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"orderdesk/internal/desk/gateway"
)

const (
	apiAddressFlag     = "a"
	apiAddressEnv      = "API_ADDRESS"
	apiAddressDefault  = "http://localhost:3000"
	httpTimeoutFlag    = "t"
	httpTimeoutEnv     = "HTTP_TIMEOUT"
	httpTimeoutDefault = 15 * time.Second
	logLevelFlag       = "l"
	logLevelEnv        = "LOG_LEVEL"
	logLevelDefault    = "info"
)

type Config struct {
	Gateway  gateway.Config
	LogLevel zapcore.Level
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	apiAddress := flag.String(
		apiAddressFlag,
		apiAddressDefault,
		"Backend API base address",
	)

	httpTimeout := flag.Duration(
		httpTimeoutFlag,
		httpTimeoutDefault,
		"HTTP request timeout",
	)

	logLevel := flag.String(
		logLevelFlag,
		logLevelDefault,
		"Log level (debug, info, warn, error)",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(apiAddressEnv); ok {
		*apiAddress = valStr
	}

	if valStr, ok := os.LookupEnv(httpTimeoutEnv); ok {
		parsed, err := time.ParseDuration(valStr)
		if err != nil {
			return nil, err
		}
		*httpTimeout = parsed
	}

	if valStr, ok := os.LookupEnv(logLevelEnv); ok {
		*logLevel = valStr
	}

	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		return nil, err
	}

	return &Config{
		Gateway: gateway.Config{
			BaseURL: *apiAddress,
			Timeout: *httpTimeout,
		},
		LogLevel: level,
	}, nil
}
