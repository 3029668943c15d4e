package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type rpcReq struct {
	ID     int64         `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

func writeResult(w http.ResponseWriter, id int64, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func TestAlchemyClient_GetTokenBalances_Pages(t *testing.T) {
	owner := "0x000000000000000000000000000000000000dEaD"
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req rpcReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode req: %v", err)
			return
		}
		if req.Method != "alchemy_getTokenBalances" {
			t.Errorf("method=%s", req.Method)
		}
		if req.Params[0] != owner || req.Params[1] != "erc20" {
			t.Errorf("params=%v", req.Params)
		}

		if len(req.Params) == 2 {
			writeResult(w, req.ID, map[string]interface{}{
				"address": owner,
				"tokenBalances": []map[string]interface{}{
					{"contractAddress": "0xdac17f958d2ee523a2206206994597c13d831ec7", "tokenBalance": "0xbc614e"},
				},
				"pageKey": "next",
			})
			return
		}
		opts, _ := req.Params[2].(map[string]interface{})
		if opts["pageKey"] != "next" {
			t.Errorf("pageKey=%v", opts["pageKey"])
		}
		writeResult(w, req.ID, map[string]interface{}{
			"address": owner,
			"tokenBalances": []map[string]interface{}{
				{"contractAddress": "0x6b175474e89094c44da98b954eedeac495271d0f", "tokenBalance": "0x"},
				{"contractAddress": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "tokenBalance": nil, "error": "execution reverted"},
			},
		})
	}))
	defer srv.Close()

	c := NewAlchemyClient(srv.URL, srv.Client(), nil)
	got, err := c.GetTokenBalances(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetTokenBalances: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls=%d", calls)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].Raw.String() != "12345678" {
		t.Fatalf("raw[0]=%s", got[0].Raw)
	}
	if got[1].Raw.Sign() != 0 || got[2].Raw.Sign() != 0 {
		t.Fatalf("raw[1]=%s raw[2]=%s", got[1].Raw, got[2].Raw)
	}
	if got[1].ContractAddress != "0x6b175474e89094c44da98b954eedeac495271d0f" {
		t.Fatalf("order broken: %s", got[1].ContractAddress)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("ids=%q %q", got[0].ID, got[1].ID)
	}

	again, err := c.GetTokenBalances(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetTokenBalances: %v", err)
	}
	if again[0].ID != got[0].ID {
		t.Fatal("ids are not stable across identical responses")
	}
}

func TestAlchemyClient_GetTokenMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode req: %v", err)
			return
		}
		if req.Method != "alchemy_getTokenMetadata" {
			t.Errorf("method=%s", req.Method)
		}
		switch req.Params[0] {
		case "0xusdt":
			writeResult(w, req.ID, map[string]interface{}{
				"name": "Tether USD", "symbol": "USDT", "decimals": 6, "logo": "https://static.alchemyapi.io/images/assets/825.png",
			})
		default:
			writeResult(w, req.ID, map[string]interface{}{
				"name": nil, "symbol": nil, "decimals": nil, "logo": nil,
			})
		}
	}))
	defer srv.Close()

	c := NewAlchemyClient(srv.URL, srv.Client(), nil)
	md, err := c.GetTokenMetadata(context.Background(), "0xusdt")
	if err != nil {
		t.Fatalf("GetTokenMetadata: %v", err)
	}
	if md.Symbol != "USDT" || md.Decimals != 6 || md.Logo == "" {
		t.Fatalf("metadata=%+v", md)
	}

	md, err = c.GetTokenMetadata(context.Background(), "0xunknown")
	if err != nil {
		t.Fatalf("GetTokenMetadata: %v", err)
	}
	if md.Symbol != "" || md.Decimals != 0 || md.Logo != "" {
		t.Fatalf("metadata=%+v", md)
	}
}

func TestParseRawBalance(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "0x0", want: "0"},
		{in: "0x", want: "0"},
		{in: "", want: "0"},
		{in: "0xde0b6b3a7640000", want: "1000000000000000000"},
		{in: "12345", want: "12345"},
		{in: "0xzz", err: true},
	}
	for _, tt := range tests {
		n, err := parseRawBalance(tt.in)
		if tt.err {
			if err == nil {
				t.Fatalf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if n.String() != tt.want {
			t.Fatalf("%q: got %s want %s", tt.in, n, tt.want)
		}
	}
}
