package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	CoingeckoAPIURL       = "https://api.coingecko.com"
	coingeckoContractPath = "/api/v3/coins/%s/contract/%s"
)

type coingeckoLogos struct {
	APIClienter
	baseURL  string
	platform string
	http     *http.Client
	limiter  *rate.Limiter
}

// WithCoingeckoLogos fills in the logo of metadata that came back without one.
// Lookup failures are logged and never fail the metadata call.
func WithCoingeckoLogos(next APIClienter, baseURL string, chain Chain, httpClient *http.Client, limiter *rate.Limiter) APIClienter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = NewLimiter(0)
	}
	return &coingeckoLogos{
		APIClienter: next,
		baseURL:     strings.TrimRight(baseURL, "/"),
		platform:    CoingeckoPlatforms[chain],
		http:        httpClient,
		limiter:     limiter,
	}
}

func (c *coingeckoLogos) GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error) {
	md, err := c.APIClienter.GetTokenMetadata(ctx, contract)
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, errors.Errorf("empty metadata for %s", contract)
	}
	if md.Logo != "" || c.platform == "" {
		return md, nil
	}

	info, err := c.coinInfo(ctx, contract)
	if err != nil {
		log.Printf("coingecko logo lookup for %s: %v", contract, err)
		return md, nil
	}

	enriched := *md
	enriched.Logo = info.Image.Small
	if enriched.Logo == "" {
		enriched.Logo = info.Image.Thumb
	}
	return &enriched, nil
}

func (c *coingeckoLogos) coinInfo(ctx context.Context, contract string) (*CoingeckoCoinInfo, error) {
	url := c.baseURL + fmt.Sprintf(coingeckoContractPath, c.platform, strings.ToLower(contract))

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		r, err := c.http.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "failure retrieving coingecko coin info")
		}
		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failure reading response body")
		}

		if r.StatusCode == http.StatusTooManyRequests {
			waitTime, err := time.ParseDuration(r.Header.Get("Retry-After") + "s")
			if err != nil {
				return nil, errors.Errorf("coingecko rate limit reached")
			}
			log.Printf("coingecko rate limit reached. waiting %v...", waitTime)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(waitTime):
			}
			continue
		}
		if r.StatusCode != http.StatusOK {
			return nil, errors.Errorf("response status: %d; body: %s", r.StatusCode, string(body))
		}

		var info CoingeckoCoinInfo
		if err := json.Unmarshal(body, &info); err != nil {
			return nil, errors.Wrapf(err, "failure unmarshalling response body")
		}
		return &info, nil
	}
}
