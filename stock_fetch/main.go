package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/marstr/stockfetch"
	"github.com/marstr/stockfetch/fetch"
	"github.com/marstr/stockfetch/fetch/alphavantage"
	"github.com/marstr/stockfetch/logging"
	"github.com/marstr/stockfetch/present"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr, newConfig())
	stop()
	os.Exit(code)
}

// run returns the process exit status. Only a wrong argument count or an
// unusable TIMEOUT fails, unless strict mode is configured.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg *viper.Viper) int {
	if len(args) != 2 {
		prog := "stock_fetch"
		if len(args) > 0 {
			prog = filepath.Base(args[0])
		}
		fmt.Fprintf(stderr, "Usage: %s <stock_symbol>\n", prog)
		return 1
	}

	log := logging.New(stderr, cfg.GetBool(verboseKey))
	defer log.Sync()

	if cfg.GetString(alphavantageApiKeyKey) == placeholderApiKey {
		log.Warn("no Alpha Vantage API key configured, using the demo key",
			zap.String("env", envPrefix+"_"+alphavantageApiKeyKey))
	}

	timeout, err := requestTimeout(cfg)
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return 1
	}

	var fetcher fetch.Fetcher = alphavantage.Client{
		ApiKey:     cfg.GetString(alphavantageApiKeyKey),
		BaseUri:    cfg.GetString(baseUriKey),
		UserAgent:  cfg.GetString(userAgentKey),
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        log,
	}

	err = fetchAndRender(ctx, fetcher, present.New(stdout, log), stockfetch.Symbol(args[1]))
	if err != nil && cfg.GetBool(strictKey) {
		return 1
	}
	return 0
}

func fetchAndRender(ctx context.Context, fetcher fetch.Fetcher, presenter present.Presenter, symbol stockfetch.Symbol) error {
	body, err := fetcher.Fetch(ctx, symbol)
	if err != nil {
		var netErr stockfetch.NetworkError
		if errors.As(err, &netErr) {
			presenter.Log.Error("request failed", zap.Error(netErr.Err), zap.String("symbol", string(symbol)))
		} else {
			presenter.Log.Error("request failed", zap.Error(err))
		}
		return err
	}

	return presenter.Render(body)
}
