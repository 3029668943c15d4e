package cmd

import (
	"strings"

	"erc20indexer/display"

	"github.com/spf13/cobra"
)

var (
	address string
	output  string
)

func init() {
	tokenBalances.Flags().StringVar(&address, "address", "", "0x-prefixed address to inspect")
	_ = tokenBalances.MarkFlagRequired("address")
	tokenBalances.Flags().StringVarP(&output, "output", "o", display.FormatTable, "output format: "+strings.Join(display.Formats, ", "))

	connectWallet.Flags().StringVarP(&output, "output", "o", display.FormatTable, "output format: "+strings.Join(display.Formats, ", "))
}

var tokenBalances = &cobra.Command{
	Use:   "balances",
	Short: "Retrieve the ERC-20 token balances of an address",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return display.CheckFormat(output)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		session.Observe(printProgress)

		holdings, err := session.Query(cmd.Context(), address)
		if err != nil {
			return err
		}
		return display.Render(cmd.OutOrStdout(), output, display.Rows(holdings))
	},
}

var connectWallet = &cobra.Command{
	Use:   "connect",
	Short: "Connect the configured wallet and retrieve the balances of its first account",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return display.CheckFormat(output)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		session.Observe(printProgress)

		if err := session.Connect(cmd.Context(), newConnector()); err != nil {
			return err
		}
		return display.Render(cmd.OutOrStdout(), output, display.Rows(session.State().Results))
	},
}
