// Command folio prints an overview of a cryptocurrency exchange account:
// per owned asset the net invested capital, current value and yield, plus a
// total line.
//
// Usage:
//
//	folio                      (Bitvavo, EUR markets)
//	folio --config folio.yaml
//	folio --setup [--config folio.yaml]
//
// Required environment variables (also read from a .env file):
//
//	For Bitvavo: BITVAVOKEY, BITVAVOSECRET
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vadiminshakov/folio/config"
	"github.com/vadiminshakov/folio/internal"
	"github.com/vadiminshakov/folio/internal/setup"
)

func main() {
	_ = godotenv.Load()

	opts := config.ParseFlags()

	if opts.Setup {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath
		}
		if err := setup.RunTUI(path); err != nil {
			log.Fatal(err)
		}
		return
	}

	conf, err := config.Get(opts.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(conf.Debugging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	client, err := internal.NewClient(conf, logger)
	if err != nil {
		logger.Fatal("failed to create exchange client", zap.Error(err))
	}

	overview, err := internal.NewOverview(conf, client)
	if err != nil {
		logger.Fatal("failed to create overview", zap.Error(err))
	}

	if err := overview.Run(context.Background(), logger, os.Stdout); err != nil {
		logger.Fatal("overview failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
