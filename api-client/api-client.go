package apiclient

import (
	"context"
	"net/http"

	"erc20indexer/config"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	ProviderAlchemy  = "alchemy"
	ProviderCovalent = "covalent"
)

type APIClienter interface {
	GetTokenBalances(ctx context.Context, address string) ([]*TokenBalance, error)
	GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error)
}

// NewAPIClient builds the configured provider and wraps it with the optional
// logo enrichment and metadata cache.
func NewAPIClient(cfg *config.Config) (APIClienter, error) {
	if cfg.ApiKey == "" {
		return nil, errors.New("apiKey is required")
	}

	httpClient := NewHTTPClient(cfg)
	limiter := NewLimiter(cfg.RateLimit)
	chain := Chain(cfg.Chain)

	var client APIClienter
	switch cfg.Provider {
	case "", ProviderAlchemy:
		network, ok := AlchemyNetworks[chain]
		if !ok {
			return nil, errors.Errorf("chain %s is not supported by alchemy", chain)
		}
		client = NewAlchemyClient(AlchemyURL(network, cfg.ApiKey), httpClient, limiter)
	case ProviderCovalent:
		if _, ok := Chains[chain]; !ok {
			return nil, errors.Errorf("chain %s is not supported by covalent", chain)
		}
		client = NewCovalentClient(cfg.CovalentURL, cfg.ApiKey, chain, httpClient, limiter)
	default:
		return nil, errors.Errorf("unknown provider %q", cfg.Provider)
	}

	if cfg.CoingeckoLogos {
		client = WithCoingeckoLogos(client, CoingeckoAPIURL, chain, httpClient, limiter)
	}
	if cfg.MetadataCacheSize > 0 {
		cached, err := WithMetadataCache(client, cfg.MetadataCacheSize)
		if err != nil {
			return nil, err
		}
		client = cached
	}
	return client, nil
}

// NewHTTPClient returns a client with the configured timeout; zero means none.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// NewLimiter paces outbound requests at perSecond; zero or less disables pacing.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
