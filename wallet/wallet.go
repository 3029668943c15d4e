// Package wallet talks to an EIP-1193 wallet provider exposed as a JSON-RPC
// endpoint (a desktop wallet or a browser bridge listening locally).
package wallet

import (
	"context"
	"net/http"
	"strings"

	"erc20indexer/jsonrpc"

	"github.com/pkg/errors"
)

// EIP-1193 userRejectedRequest.
const CodeUserRejected = 4001

var (
	ErrNotFound     = errors.New("wallet provider not found")
	ErrUserRejected = errors.New("user rejected the request")
	ErrNoAccounts   = errors.New("wallet returned no accounts")
)

type Provider struct {
	rpc *jsonrpc.Client
}

// New returns ErrNotFound when no provider URL is configured.
func New(url string, httpClient *http.Client) (*Provider, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNotFound
	}
	return &Provider{rpc: jsonrpc.NewClient(url, httpClient, nil)}, nil
}

// RequestAccounts asks the wallet for account access. It blocks until the user
// answers the wallet's prompt.
func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := p.rpc.Call(ctx, &accounts, "eth_requestAccounts")
	if err != nil {
		var rpcErr *jsonrpc.Error
		if errors.As(err, &rpcErr) && rpcErr.Code == CodeUserRejected {
			return nil, errors.Wrap(ErrUserRejected, rpcErr.Message)
		}
		return nil, errors.Wrap(err, "eth_requestAccounts")
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}
	return accounts, nil
}
