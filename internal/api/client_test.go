package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ikenox/ftx-history-collector/internal/auth"
)

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://ftx.com/api", nil)

		if c.baseURL != "https://ftx.com/api" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://ftx.com/api")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://ftx.com/api", nil, WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with sub-account option", func(t *testing.T) {
		c := NewClient("https://ftx.com/api", nil, WithSubAccount("algo-1"))
		if c.subAccount != "algo-1" {
			t.Errorf("subAccount = %q, want %q", c.subAccount, "algo-1")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		hc := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://ftx.com/api", nil, WithHTTPClient(hc))
		if c.httpClient != hc {
			t.Error("custom HTTP client not set")
		}
	})
}

func TestGetFills(t *testing.T) {
	const page = `{
		"success": true,
		"result": [
			{
				"fee": 0.0125,
				"feeCurrency": "USD",
				"feeRate": 0.0005,
				"future": null,
				"id": 123456,
				"liquidity": "taker",
				"market": "BTC/USD",
				"baseCurrency": "BTC",
				"quoteCurrency": "USD",
				"orderId": 789,
				"tradeId": 456,
				"price": 25000.5,
				"side": "buy",
				"size": 0.001,
				"time": "2024-01-02T15:04:05.123456+00:00",
				"type": "order"
			},
			{
				"fee": 0,
				"id": 123455,
				"price": 1.5,
				"size": 10,
				"time": "2024-01-02T15:03:00+00:00"
			}
		]
	}`

	var gotURL string
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotHeader = r.Header.Clone()
		w.Write([]byte(page))
	}))
	defer srv.Close()

	creds := &auth.Credentials{APIKey: "k", APISecret: "s"}
	c := NewClient(srv.URL, creds, WithSubAccount("algo-1"))

	end := time.Unix(1700000000, 0)
	fills, err := c.GetFills(context.Background(), time.Unix(0, 0), end)
	if err != nil {
		t.Fatalf("GetFills failed: %v", err)
	}

	if gotURL != "/fills?end_time=1700000000&start_time=0" {
		t.Errorf("request URL = %q, want %q", gotURL, "/fills?end_time=1700000000&start_time=0")
	}
	for _, h := range []string{"FTX-KEY", "FTX-TS", "FTX-SIGN"} {
		if gotHeader.Get(h) == "" {
			t.Errorf("header %s not set", h)
		}
	}
	if gotHeader.Get("FTX-SUBACCOUNT") != "algo-1" {
		t.Errorf("FTX-SUBACCOUNT = %q, want %q", gotHeader.Get("FTX-SUBACCOUNT"), "algo-1")
	}

	if len(fills) != 2 {
		t.Fatalf("len(fills) = %d, want 2", len(fills))
	}

	f := fills[0]
	if f.ID != 123456 {
		t.Errorf("ID = %d, want 123456", f.ID)
	}
	if f.Price != 25000.5 {
		t.Errorf("Price = %v, want 25000.5", f.Price)
	}
	if f.FeeCurrency == nil || *f.FeeCurrency != "USD" {
		t.Errorf("FeeCurrency = %v, want USD", f.FeeCurrency)
	}
	if f.Future != nil {
		t.Errorf("Future = %v, want nil", f.Future)
	}
	if f.OrderID == nil || *f.OrderID != 789 {
		t.Errorf("OrderID = %v, want 789", f.OrderID)
	}
	wantTime := time.Date(2024, 1, 2, 15, 4, 5, 123456000, time.UTC)
	if !f.Time.Equal(wantTime) {
		t.Errorf("Time = %v, want %v", f.Time, wantTime)
	}

	// Fields the exchange omitted entirely decode to nil.
	g := fills[1]
	if g.FeeCurrency != nil || g.Side != nil || g.OrderID != nil || g.Type != nil {
		t.Errorf("omitted optional fields should be nil, got %+v", g)
	}
}

func TestGetFillsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "error": "Not logged in"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetFills(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "Not logged in" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Not logged in")
	}
}

func TestGetFillsEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "Invalid parameter start_time"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetFills(context.Background(), time.Unix(0, 0), time.Unix(1, 0))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Message != "Invalid parameter start_time" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Invalid parameter start_time")
	}
}

func TestGetFillsMalformedBody(t *testing.T) {
	const body = `<html>rate limited, go away</html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetFills(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	if err == nil {
		t.Fatal("expected error for malformed body")
	}

	// The raw body must be surfaced for diagnosis.
	if !strings.Contains(err.Error(), body) {
		t.Errorf("error %q does not contain the raw response body", err)
	}
}

func TestGetFillsMalformedResult(t *testing.T) {
	const body = `{"success": true, "result": {"unexpected": "object"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetFills(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	if err == nil {
		t.Fatal("expected error for malformed result")
	}
	if !strings.Contains(err.Error(), body) {
		t.Errorf("error %q does not contain the raw response body", err)
	}
}

func TestGetFillsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil)
	_, err := c.GetFills(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an *APIError, got %v", apiErr)
	}
}

func TestGetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account" {
			t.Errorf("path = %q, want /account", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "result": {"username": "trader@example.com", "collateral": 1000.5, "totalAccountValue": 1200, "leverage": 5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	account, err := c.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if account.Username != "trader@example.com" {
		t.Errorf("Username = %q, want %q", account.Username, "trader@example.com")
	}
	if account.Collateral != 1000.5 {
		t.Errorf("Collateral = %v, want 1000.5", account.Collateral)
	}
}
