package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/folio/config"
	"github.com/vadiminshakov/folio/internal/clients"
)

// NewClient constructs the exchange client of the configured platform.
func NewClient(conf config.Config, logger *zap.Logger) (any, error) {
	switch conf.Platform {
	case config.PlatformBitvavo:
		return clients.NewBitvavoClient(conf.APIKey, conf.APISecret, clients.BitvavoOptions{
			RESTURL:      conf.RESTURL,
			WSURL:        conf.WSURL,
			AccessWindow: conf.AccessWindow,
			Logger:       logger,
		})
	case config.PlatformBinance:
		return clients.NewBinanceClient(conf.APIKey, conf.APISecret, conf.RESTURL, conf.Debugging), nil
	case config.PlatformBybit:
		return clients.NewBybitClient(conf.APIKey, conf.APISecret, conf.RESTURL), nil
	default:
		return nil, errors.Wrapf(config.ErrUnsupportedPlatform, "%s", conf.Platform)
	}
}
