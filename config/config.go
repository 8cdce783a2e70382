// Package config loads the overview configuration from flags, an optional
// YAML file and the environment.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/folio/internal/clients"
	"gopkg.in/yaml.v3"
)

const (
	PlatformBitvavo = "bitvavo"
	PlatformBinance = "binance"
	PlatformBybit   = "bybit"

	DefaultQuoteCurrency = "EUR"
	DefaultTableStyle    = "plain"
	DefaultPath          = "folio.yaml"
)

var (
	// ErrMissingCredentials a required credential variable is not set.
	ErrMissingCredentials = errors.New("missing exchange credentials")
	// ErrUnsupportedPlatform the configured platform has no reader.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// credentialEnv names of the key and secret variables per platform.
var credentialEnv = map[string][2]string{
	PlatformBitvavo: {"BITVAVOKEY", "BITVAVOSECRET"},
	PlatformBinance: {"BINANCE_API_KEY", "BINANCE_API_SECRET"},
	PlatformBybit:   {"BYBIT_API_KEY", "BYBIT_API_SECRET"},
}

type Config struct {
	Platform      string
	QuoteCurrency string
	RESTURL       string
	WSURL         string
	AccessWindow  int
	Debugging     bool
	TableStyle    string
	APIKey        string
	APISecret     string
}

type ConfigTmp struct {
	Platform      string `yaml:"platform"`
	QuoteCurrency string `yaml:"quote_currency"`
	RESTURL       string `yaml:"rest_url,omitempty"`
	WSURL         string `yaml:"ws_url,omitempty"`
	AccessWindow  int    `yaml:"access_window,omitempty"`
	Debugging     bool   `yaml:"debugging,omitempty"`
	TableStyle    string `yaml:"table_style,omitempty"`
}

// Options command line switches.
type Options struct {
	ConfigPath string
	Setup      bool
}

// ParseFlags parses the command line. Without flags the overview runs on the
// default configuration.
func ParseFlags() Options {
	path := flag.String("config", "", "path to yaml config")
	setup := flag.Bool("setup", false, "run the interactive configuration wizard")
	flag.Parse()

	return Options{ConfigPath: *path, Setup: *setup}
}

// Get returns the configuration of path (defaults when path is empty) with
// credentials taken from the environment.
func Get(path string) (Config, error) {
	tmp := ConfigTmp{}
	if path != "" {
		var err error
		tmp, err = getYaml(path)
		if err != nil {
			return Config{}, err
		}
	}

	cfg, err := fromTmp(tmp)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.loadCredentials(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getYaml(path string) (ConfigTmp, error) {
	var tmp ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return ConfigTmp{}, err
	}
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return ConfigTmp{}, errors.Wrapf(err, "incorrect yaml config %s", path)
	}
	return tmp, nil
}

func fromTmp(c ConfigTmp) (Config, error) {
	cfg := Config{
		Platform:      strings.ToLower(strings.TrimSpace(c.Platform)),
		QuoteCurrency: strings.ToUpper(strings.TrimSpace(c.QuoteCurrency)),
		RESTURL:       c.RESTURL,
		WSURL:         c.WSURL,
		AccessWindow:  c.AccessWindow,
		Debugging:     c.Debugging,
		TableStyle:    c.TableStyle,
	}

	if cfg.Platform == "" {
		cfg.Platform = PlatformBitvavo
	}
	if _, ok := credentialEnv[cfg.Platform]; !ok {
		return Config{}, errors.Wrapf(ErrUnsupportedPlatform, "'platform' param in yaml config: %q", c.Platform)
	}
	if cfg.QuoteCurrency == "" {
		cfg.QuoteCurrency = DefaultQuoteCurrency
	}
	if cfg.TableStyle == "" {
		cfg.TableStyle = DefaultTableStyle
	}
	if cfg.TableStyle != "plain" && cfg.TableStyle != "box" {
		return Config{}, fmt.Errorf("incorrect 'table_style' param in yaml config (plain or box): %q", cfg.TableStyle)
	}
	if cfg.AccessWindow < 0 {
		return Config{}, fmt.Errorf("incorrect 'access_window' param in yaml config (must be positive): %d", cfg.AccessWindow)
	}

	if cfg.Platform == PlatformBitvavo {
		if cfg.RESTURL == "" {
			cfg.RESTURL = clients.BitvavoRESTURL
		}
		if cfg.WSURL == "" {
			cfg.WSURL = clients.BitvavoWSURL
		}
		if cfg.AccessWindow == 0 {
			cfg.AccessWindow = clients.BitvavoDefaultAccessWindow
		}
	}

	return cfg, nil
}

func (c *Config) loadCredentials(getenv func(string) string) error {
	names := credentialEnv[c.Platform]
	c.APIKey = getenv(names[0])
	c.APISecret = getenv(names[1])

	var missing []string
	if c.APIKey == "" {
		missing = append(missing, names[0])
	}
	if c.APISecret == "" {
		missing = append(missing, names[1])
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissingCredentials, "%s must be set", strings.Join(missing, " and "))
	}
	return nil
}

// Write stores the non secret part of the configuration as YAML at path.
func Write(path string, c ConfigTmp) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return os.WriteFile(path, out, 0o644)
}
