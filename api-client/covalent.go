package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	covalentBalancesPath = "/v1/%s/address/%s/balances_v2/"
	covalentHoldersPath  = "/v1/%s/tokens/%s/token_holders_v2/"
)

type covalentClient struct {
	baseURL string
	apiKey  string
	chainID string
	http    *http.Client
	limiter *rate.Limiter
}

func NewCovalentClient(baseURL, apiKey string, chain Chain, httpClient *http.Client, limiter *rate.Limiter) APIClienter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = NewLimiter(0)
	}
	return &covalentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		chainID: Chains[chain],
		http:    httpClient,
		limiter: limiter,
	}
}

func (c *covalentClient) GetTokenBalances(ctx context.Context, address string) ([]*TokenBalance, error) {
	resp, err := c.get(ctx, fmt.Sprintf(covalentBalancesPath, c.chainID, address), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failure retrieving token balances for %s", address)
	}

	balances := make([]*TokenBalance, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		// the chain's coin is listed under a pseudo contract with no token holders
		if item.Type == "nft" || item.NativeToken {
			continue
		}
		n, err := parseRawBalance(item.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "contract %s", item.ContractAddress)
		}
		balances = append(balances, &TokenBalance{
			ID:              newBalanceID(address, item.ContractAddress, len(balances)),
			ContractAddress: item.ContractAddress,
			Raw:             n,
		})
	}
	return balances, nil
}

// GetTokenMetadata reads the contract fields of the first holder row, the
// cheapest Covalent call that carries them.
func (c *covalentClient) GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error) {
	resp, err := c.get(ctx, fmt.Sprintf(covalentHoldersPath, c.chainID, contract), url.Values{"page-size": {"1"}})
	if err != nil {
		return nil, errors.Wrapf(err, "failure retrieving token metadata for %s", contract)
	}
	if len(resp.Data.Items) == 0 {
		return nil, errors.Errorf("no metadata for contract %s", contract)
	}

	item := resp.Data.Items[0]
	md := &TokenMetadata{
		Name:     item.ContractName,
		Symbol:   item.ContractTickerSymbol,
		Decimals: int32(item.ContractDecimals),
		Logo:     item.LogoURL,
	}
	if md.Decimals < 0 {
		md.Decimals = 0
	}
	return md, nil
}

func (c *covalentClient) get(ctx context.Context, path string, query url.Values) (*covalentResponse, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	r, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failure calling covalent")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failure reading response body")
	}
	if r.StatusCode != http.StatusOK {
		return nil, errors.Errorf("response status: %d; body: %s", r.StatusCode, string(body))
	}

	var resp covalentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failure unmarshalling response body")
	}
	if resp.Error {
		return nil, errors.Errorf("covalent error %d: %s", resp.ErrorCode, resp.ErrorMessage)
	}
	return &resp, nil
}
