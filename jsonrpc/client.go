// Package jsonrpc is a minimal JSON-RPC 2.0 over HTTP client shared by the
// Alchemy API client and the wallet provider.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const maxResponseSize = 4 << 20

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object returned by the remote end.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type Client struct {
	url     string
	http    *http.Client
	limiter *rate.Limiter
	nextID  int64
}

// NewClient returns a client posting to url. A nil limiter means unlimited.
func NewClient(url string, httpClient *http.Client, limiter *rate.Limiter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Client{
		url:     strings.TrimSpace(url),
		http:    httpClient,
		limiter: limiter,
	}
}

// Call invokes method with params and decodes the result into out.
func (c *Client) Call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	raw, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      atomic.AddInt64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "failure encoding %s request", method)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrapf(err, "failure building %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	r, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failure calling %s", method)
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "failure reading response body")
	}
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		return errors.Errorf("response status: %d; body: %s", r.StatusCode, strings.TrimSpace(string(body)))
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return errors.Wrap(err, "failure unmarshalling response body")
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out == nil {
		return nil
	}
	if len(resp.Result) == 0 {
		return errors.Errorf("empty result for %s", method)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return errors.Wrapf(err, "failure decoding %s result", method)
	}
	return nil
}
