package indexer

import (
	"github.com/pkg/errors"
)

var (
	ErrProviderNotFound = errors.New("wallet provider not found")
	ErrConnectionFailed = errors.New("connection failed")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrNoBalances       = errors.New("address has no balances")
)

// UserMessage is the notification shown to the user for a failed query or
// connection attempt.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProviderNotFound):
		return "Wallet provider not found. Install a wallet or set walletUrl to connect."
	case errors.Is(err, ErrConnectionFailed):
		return "Connection failed. Please approve the request in your wallet."
	case errors.Is(err, ErrInvalidAddress):
		return "Invalid address: expected a 42 character 0x-prefixed address."
	case errors.Is(err, ErrNoBalances):
		return "This address has no token balances."
	default:
		return err.Error()
	}
}
