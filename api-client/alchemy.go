package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"erc20indexer/jsonrpc"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const alchemyURL = "https://%s.g.alchemy.com/v2/%s"

func AlchemyURL(network, apiKey string) string {
	return fmt.Sprintf(alchemyURL, network, apiKey)
}

type alchemyClient struct {
	rpc *jsonrpc.Client
}

func NewAlchemyClient(url string, httpClient *http.Client, limiter *rate.Limiter) APIClienter {
	return &alchemyClient{
		rpc: jsonrpc.NewClient(url, httpClient, limiter),
	}
}

// GetTokenBalances follows pageKey until the last page.
func (c *alchemyClient) GetTokenBalances(ctx context.Context, address string) ([]*TokenBalance, error) {
	var (
		balances []*TokenBalance
		pageKey  string
	)
	for {
		params := []interface{}{address, "erc20"}
		if pageKey != "" {
			params = append(params, map[string]string{"pageKey": pageKey})
		}

		var resp alchemyTokenBalancesResponse
		if err := c.rpc.Call(ctx, &resp, "alchemy_getTokenBalances", params...); err != nil {
			return nil, errors.Wrapf(err, "failure retrieving token balances for %s", address)
		}

		for _, b := range resp.TokenBalances {
			raw := ""
			if b.TokenBalance != nil {
				raw = *b.TokenBalance
			}
			n, err := parseRawBalance(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "contract %s", b.ContractAddress)
			}
			balances = append(balances, &TokenBalance{
				ID:              newBalanceID(address, b.ContractAddress, len(balances)),
				ContractAddress: b.ContractAddress,
				Raw:             n,
			})
		}

		if resp.PageKey == "" || resp.PageKey == pageKey {
			return balances, nil
		}
		pageKey = resp.PageKey
	}
}

func (c *alchemyClient) GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error) {
	var resp alchemyTokenMetadata
	if err := c.rpc.Call(ctx, &resp, "alchemy_getTokenMetadata", contract); err != nil {
		return nil, errors.Wrapf(err, "failure retrieving token metadata for %s", contract)
	}

	md := &TokenMetadata{}
	if resp.Name != nil {
		md.Name = *resp.Name
	}
	if resp.Symbol != nil {
		md.Symbol = *resp.Symbol
	}
	if resp.Decimals != nil && *resp.Decimals > 0 {
		md.Decimals = *resp.Decimals
	}
	if resp.Logo != nil {
		md.Logo = *resp.Logo
	}
	return md, nil
}
