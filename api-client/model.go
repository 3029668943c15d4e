package apiclient

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Chain string

var (
	ETH       Chain = "ETHEREUM"
	MATIC     Chain = "MATIC"
	ARBITRUM  Chain = "ARBITRUM"
	AVALANCHE Chain = "AVALANCHE"
	FANTOM    Chain = "FANTOM"
)

var Chains = map[Chain]string{ETH: "1", MATIC: "137", ARBITRUM: "42161", AVALANCHE: "43114", FANTOM: "250"}

var CoingeckoPlatforms = map[Chain]string{ETH: "ethereum", MATIC: "polygon-pos", ARBITRUM: "arbitrum-one", AVALANCHE: "avalanche", FANTOM: "fantom"}

// Fantom is not served by Alchemy.
var AlchemyNetworks = map[Chain]string{ETH: "eth-mainnet", MATIC: "polygon-mainnet", ARBITRUM: "arb-mainnet", AVALANCHE: "avax-mainnet"}

// TokenBalance is one entry of a balances response. It is never modified after
// the provider returns it.
type TokenBalance struct {
	ID              string   `json:"id"`
	ContractAddress string   `json:"contractAddress"`
	Raw             *big.Int `json:"tokenBalance"`
}

type TokenMetadata struct {
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
	Logo     string `json:"logo,omitempty"`
}

var balanceIDSpace = uuid.MustParse("6f1d2a4e-8b7c-4c1e-9a35-0d6e2b7f4c90")

// newBalanceID derives a stable opaque identifier for the i-th balance of owner.
func newBalanceID(owner, contract string, i int) string {
	name := fmt.Sprintf("%s/%s/%d", strings.ToLower(owner), strings.ToLower(contract), i)
	return uuid.NewSHA1(balanceIDSpace, []byte(name)).String()
}

// parseRawBalance accepts 0x-prefixed hex or a base 10 integer.
func parseRawBalance(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
		if s == "" {
			return big.NewInt(0), nil
		}
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Errorf("invalid token balance %q", s)
	}
	return n, nil
}
