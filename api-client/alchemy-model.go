package apiclient

type alchemyTokenBalancesResponse struct {
	Address       string                `json:"address"`
	TokenBalances []alchemyTokenBalance `json:"tokenBalances"`
	PageKey       string                `json:"pageKey,omitempty"`
}

type alchemyTokenBalance struct {
	ContractAddress string  `json:"contractAddress"`
	TokenBalance    *string `json:"tokenBalance"`
	Error           *string `json:"error,omitempty"`
}

type alchemyTokenMetadata struct {
	Name     *string `json:"name"`
	Symbol   *string `json:"symbol"`
	Decimals *int32  `json:"decimals"`
	Logo     *string `json:"logo"`
}
