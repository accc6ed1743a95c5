package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/marstr/stockfetch/fetch/alphavantage"
)

const (
	envPrefix = "STOCKFETCH"

	alphavantageApiKeyKey = "AVKEY"
	baseUriKey            = "BASEURI"
	userAgentKey          = "USERAGENT"
	timeoutKey            = "TIMEOUT"
	strictKey             = "STRICT"
	verboseKey            = "VERBOSE"

	// Alpha Vantage's public demo key; only answers for a handful of symbols.
	placeholderApiKey = "demo"
)

// newConfig reads STOCKFETCH_* variables, after importing any .env file in
// the working directory.
func newConfig() *viper.Viper {
	_ = godotenv.Load()

	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetDefault(alphavantageApiKeyKey, placeholderApiKey)
	cfg.SetDefault(baseUriKey, alphavantage.AlphaVantageBaseUri)
	cfg.SetDefault(userAgentKey, alphavantage.DefaultUserAgent)
	cfg.SetDefault(timeoutKey, "0")
	cfg.SetDefault(strictKey, false)
	cfg.SetDefault(verboseKey, false)
	cfg.AutomaticEnv()
	return cfg
}

// requestTimeout reads TIMEOUT as a Go duration ("30s", "1m30s"). A bare
// integer counts seconds. Zero means no timeout.
func requestTimeout(cfg *viper.Viper) (time.Duration, error) {
	raw := strings.TrimSpace(cfg.GetString(timeoutKey))
	if raw == "" {
		return 0, nil
	}

	if secs, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s_%s: %w", envPrefix, timeoutKey, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("%s_%s: negative timeout %s", envPrefix, timeoutKey, timeout)
	}
	return timeout, nil
}
