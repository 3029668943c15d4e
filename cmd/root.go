package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	apiclient "erc20indexer/api-client"
	"erc20indexer/config"
	"erc20indexer/indexer"
	"erc20indexer/wallet"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config.yaml"

var (
	cfgPath string
	cfg     *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(tokenBalances, connectWallet, serve)
}

var rootCmd = &cobra.Command{
	Use:           "erc20-indexer",
	Short:         "List the ERC-20 token balances of an address",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cfgPath)
	},
}

func Execute() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, indexer.UserMessage(err))
		os.Exit(1)
	}
}

// initConfig tolerates a missing file only at the default location.
func initConfig(path string) error {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if path != "" {
		log.Printf("using config file: %s", path)
	}
	return nil
}

func newSession() (*indexer.Session, error) {
	client, err := apiclient.NewAPIClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error creating api client")
	}
	return indexer.NewSession(client), nil
}

// newConnector returns nil when no wallet provider is configured.
func newConnector() indexer.Connector {
	// no timeout: the request waits for the user to answer the wallet prompt
	p, err := wallet.New(cfg.WalletURL, &http.Client{})
	if err != nil {
		return nil
	}
	return p
}

// printProgress reports phase changes on stderr.
func printProgress(prev, next indexer.State) {
	if prev.Phase == next.Phase || !next.Busy {
		return
	}
	switch next.Phase {
	case indexer.PhaseFetchingBalances:
		fmt.Fprintf(os.Stderr, "Retrieving balances of %s...\n", next.Address)
	case indexer.PhaseFetchingMetadata:
		fmt.Fprintf(os.Stderr, "Found %d balances. Retrieving token metadata...\n", next.Pending)
	}
}
