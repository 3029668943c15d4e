// Package display turns a published result set into rows and renders them.
package display

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"erc20indexer/indexer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var Formats = []string{FormatTable, FormatCSV, FormatJSON, FormatYAML}

type Row struct {
	ID       string `json:"id" yaml:"id"`
	Contract string `json:"contract" yaml:"contract"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Balance  string `json:"balance" yaml:"balance"`
	Raw      string `json:"raw" yaml:"raw"`
	Decimals int32  `json:"decimals" yaml:"decimals"`
	Logo     string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// Rows keeps the order of holdings.
func Rows(holdings []indexer.Holding) []Row {
	rows := make([]Row, 0, len(holdings))
	for _, h := range holdings {
		raw := "0"
		if h.Balance.Raw != nil {
			raw = h.Balance.Raw.String()
		}
		rows = append(rows, Row{
			ID:       h.Balance.ID,
			Contract: checksum(h.Balance.ContractAddress),
			Symbol:   h.Metadata.Symbol,
			Balance:  h.Amount().String(),
			Raw:      raw,
			Decimals: h.Metadata.Decimals,
			Logo:     h.Metadata.Logo,
		})
	}
	return rows
}

func checksum(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

func CheckFormat(format string) error {
	for _, f := range Formats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return errors.Errorf("unknown output format %q, expected one of %s", format, strings.Join(Formats, ", "))
}

func Render(w io.Writer, format string, rows []Row) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return renderTable(w, rows)
	case FormatCSV:
		return renderCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return errors.Wrap(err, "error writing yaml")
		}
		return enc.Close()
	default:
		return CheckFormat(format)
	}
}

func renderTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tBALANCE\tCONTRACT\tLOGO")
	for _, r := range rows {
		logo := r.Logo
		if logo == "" {
			logo = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Symbol, r.Balance, r.Contract, logo)
	}
	return tw.Flush()
}

func renderCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"symbol", "balance", "raw", "decimals", "contract", "logo"}); err != nil {
		return errors.Wrap(err, "error writing headers to csv")
	}
	for _, r := range rows {
		record := []string{r.Symbol, r.Balance, r.Raw, fmt.Sprint(r.Decimals), r.Contract, r.Logo}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "error writing row to csv")
		}
	}
	cw.Flush()
	return cw.Error()
}
