package apiclient

import "github.com/cshields143/govalent/class_a"

type covalentResponse struct {
	Data         covalentData `json:"data"`
	Error        bool         `json:"error"`
	ErrorMessage string       `json:"error_message"`
	ErrorCode    int          `json:"error_code"`
}

type covalentData struct {
	Address    string              `json:"address"`
	Items      []covalentItem      `json:"items"`
	Pagination *covalentPagination `json:"pagination"`
}

// covalentItem is a balances_v2 / token_holders_v2 row. Logo and name are
// read here since only the portfolio core fields are relied on.
type covalentItem struct {
	class_a.Portfolio
	ContractName string `json:"contract_name"`
	LogoURL      string `json:"logo_url"`
	NativeToken  bool   `json:"native_token"`
}

type covalentPagination struct {
	HasMore    bool `json:"has_more"`
	PageNumber int  `json:"page_number"`
	PageSize   int  `json:"page_size"`
}
