package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"erc20indexer/server"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

func init() {
	serve.Flags().StringVar(&serveHost, "host", "", "listen host, overrides server.host")
	serve.Flags().IntVar(&servePort, "port", 0, "listen port, overrides server.port")
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Serve the token balances page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}

		connector := newConnector()
		if connector == nil {
			log.Println("no walletUrl configured, wallet connection disabled")
		}
		router := server.NewRouter(session, connector)

		host, port := cfg.Server.Host, cfg.Server.Port
		if serveHost != "" {
			host = serveHost
		}
		if servePort != 0 {
			port = servePort
		}
		addr := fmt.Sprintf("%s:%d", host, port)

		srv := &http.Server{
			Addr:        addr,
			Handler:     router.Engine(),
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("HTTP server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return errors.Wrap(err, "HTTP server error")
		case <-cmd.Context().Done():
		}

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
