package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	apiclient "erc20indexer/api-client"
	"erc20indexer/indexer"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	holder  = "0x000000000000000000000000000000000000dEaD"
	empty   = "0x0000000000000000000000000000000000000001"
	usdtCtr = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
)

type fakeClient struct{}

func (fakeClient) GetTokenBalances(ctx context.Context, address string) ([]*apiclient.TokenBalance, error) {
	if address != holder {
		return nil, nil
	}
	return []*apiclient.TokenBalance{{ID: "id-1", ContractAddress: usdtCtr, Raw: big.NewInt(2500000)}}, nil
}

func (fakeClient) GetTokenMetadata(ctx context.Context, contract string) (*apiclient.TokenMetadata, error) {
	if contract != usdtCtr {
		return nil, errors.New("unknown")
	}
	return &apiclient.TokenMetadata{Symbol: "USDT", Decimals: 6, Logo: "https://logo/usdt.png"}, nil
}

type fakeConnector struct{ err error }

func (c fakeConnector) RequestAccounts(ctx context.Context) ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []string{holder}, nil
}

func do(t *testing.T, r *Router, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestRouter_Balances(t *testing.T) {
	r := NewRouter(indexer.NewSession(fakeClient{}), nil)

	w := do(t, r, http.MethodPost, "/api/v1/balances/"+holder, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Address string `json:"address"`
		Count   int    `json:"count"`
		Tokens  []struct {
			Symbol  string `json:"symbol"`
			Balance string `json:"balance"`
			Logo    string `json:"logo"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Tokens[0].Symbol != "USDT" || resp.Tokens[0].Balance != "2.5" {
		t.Fatalf("resp=%+v", resp)
	}

	if w := do(t, r, http.MethodPost, "/api/v1/balances/0x123", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid address status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/balances/"+empty, nil); w.Code != http.StatusNotFound {
		t.Fatalf("empty balances status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/v1/state", nil)
	var st stateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Busy || st.Phase != "idle" || st.Error == "" || len(st.Tokens) != 1 {
		t.Fatalf("state=%+v", st)
	}
}

func TestRouter_BalancesRejectsGet(t *testing.T) {
	session := indexer.NewSession(fakeClient{})
	r := NewRouter(session, nil)

	if w := do(t, r, http.MethodGet, "/api/v1/balances/"+holder, nil); w.Code == http.StatusOK {
		t.Fatalf("GET status=%d", w.Code)
	}
	if st := session.State(); st.Queried || st.Address != "" {
		t.Fatalf("GET changed the session: %+v", st)
	}
}

func TestRouter_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := NewRouter(indexer.NewSession(fakeClient{}), nil)
	r.Engine().GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/boom", nil)
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "internal server error") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	do(t, r, http.MethodPost, "/api/v1/balances/0x1", nil)
	out := buf.String()
	if !strings.Contains(out, "panic in GET /boom") {
		t.Fatalf("log:\n%s", out)
	}
	if !strings.Contains(out, "POST /api/v1/balances/0x1 400") || !strings.Contains(out, "phase=idle err=") {
		t.Fatalf("log:\n%s", out)
	}
}

func TestRouter_Connect(t *testing.T) {
	r := NewRouter(indexer.NewSession(fakeClient{}), nil)
	if w := do(t, r, http.MethodPost, "/api/v1/connect", nil); w.Code != http.StatusPreconditionFailed {
		t.Fatalf("no provider status=%d", w.Code)
	}

	r = NewRouter(indexer.NewSession(fakeClient{}), fakeConnector{err: errors.New("rejected")})
	if w := do(t, r, http.MethodPost, "/api/v1/connect", nil); w.Code != http.StatusBadGateway {
		t.Fatalf("rejected status=%d", w.Code)
	}

	r = NewRouter(indexer.NewSession(fakeClient{}), fakeConnector{})
	w := do(t, r, http.MethodPost, "/api/v1/connect", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var st stateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.ConnectedAddress != holder || st.Phase != "published" || len(st.Tokens) != 1 {
		t.Fatalf("state=%+v", st)
	}
}

func TestRouter_Page(t *testing.T) {
	r := NewRouter(indexer.NewSession(fakeClient{}), nil)

	w := do(t, r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Please make a query!") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/query", url.Values{"address": {holder}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("query status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/", nil)
	body := w.Body.String()
	if !strings.Contains(body, "USDT") || !strings.Contains(body, "2.5") || !strings.Contains(body, "https://logo/usdt.png") {
		t.Fatalf("page:\n%s", body)
	}

	do(t, r, http.MethodPost, "/connect", url.Values{})
	w = do(t, r, http.MethodGet, "/", nil)
	if !strings.Contains(w.Body.String(), "Wallet provider not found") {
		t.Fatalf("page:\n%s", w.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := NewRouter(indexer.NewSession(fakeClient{}), nil)
	if w := do(t, r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}

	do(t, r, http.MethodPost, "/api/v1/balances/"+holder, nil)
	do(t, r, http.MethodPost, "/api/v1/balances/0x1", nil)

	w := do(t, r, http.MethodGet, "/metrics", nil)
	body := w.Body.String()
	if !strings.Contains(body, `erc20_indexer_queries_total{outcome="published"} 1`) {
		t.Fatalf("metrics:\n%s", body)
	}
	if !strings.Contains(body, `erc20_indexer_queries_total{outcome="invalid_address"} 1`) {
		t.Fatalf("metrics:\n%s", body)
	}
	if !strings.Contains(body, "erc20_indexer_busy 0") {
		t.Fatalf("metrics:\n%s", body)
	}
}
