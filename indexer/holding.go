package indexer

import (
	apiclient "erc20indexer/api-client"

	"github.com/shopspring/decimal"
)

// Holding pairs a balance with the metadata of its contract.
type Holding struct {
	Balance  apiclient.TokenBalance
	Metadata apiclient.TokenMetadata
}

// Amount is the raw balance scaled by 10^-decimals.
func (h Holding) Amount() decimal.Decimal {
	if h.Balance.Raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(h.Balance.Raw, -h.Metadata.Decimals)
}
