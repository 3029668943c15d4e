package config

import (
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "ERC20"

type Config struct {
	Provider          string        `yaml:"provider"`
	ApiKey            string        `yaml:"apiKey"`
	Chain             string        `yaml:"chain"`
	WalletURL         string        `yaml:"walletUrl"`
	RateLimit         float64       `yaml:"rateLimit"`
	HTTPTimeout       time.Duration `yaml:"httpTimeout"`
	MetadataCacheSize int           `yaml:"metadataCacheSize"`
	CoingeckoLogos    bool          `yaml:"coingeckoLogos"`
	CovalentURL       string        `yaml:"covalentUrl"`
	Server            ServerConfig  `yaml:"server"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

var defaults = map[string]interface{}{
	"provider":          "alchemy",
	"apiKey":            "",
	"chain":             "ETHEREUM",
	"walletUrl":         "",
	"rateLimit":         0,
	"httpTimeout":       "0s",
	"metadataCacheSize": 0,
	"coingeckoLogos":    false,
	"covalentUrl":       "https://api.covalenthq.com",
	"server.host":       "127.0.0.1",
	"server.port":       8080,
}

// Load reads the YAML file at path (skipped when path is empty) and applies
// ERC20_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "error using config file %v", path)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "yaml"
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Chain = strings.ToUpper(strings.TrimSpace(cfg.Chain))

	return &cfg, nil
}
