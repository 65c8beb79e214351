package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testRequest() PriceRequest {
	return PriceRequest{
		Model:     "bs",
		Params:    map[string]float64{"sigma": 0.3},
		Market:    Market{Spot: 100, Rate: 0.055, Yield: 0.03, Maturity: 1},
		Strike:    80,
		Transform: &Transform{Alpha: 1.5, Eta: 0.25, N: 10},
	}
}

func TestPricePut_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/price" {
			t.Errorf("expected path /v1/price, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req PriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "bs" || req.Params["sigma"] != 0.3 || req.Transform.N != 10 {
			t.Errorf("unexpected request: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PriceResponse{Model: "bs", Put: 3.0376, Index: 357})
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, time.Second, 3, logger)

	resp, err := client.PricePut(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Put != 3.0376 || resp.Index != 357 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPricePut_BadRequest(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "alpha must be > 0"})
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, 10*time.Millisecond, 3, logger)

	_, err := client.PricePut(context.Background(), testRequest())
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("bad requests must not be retried, got %d attempts", attempts)
	}
}

func TestPricePut_NonFinite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "put is NaN"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 10, 30*time.Second, time.Millisecond, 0, zap.NewNop())

	_, err := client.PricePut(context.Background(), testRequest())
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
}

func TestPricePut_RateLimited(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, 10*time.Millisecond, 2, logger)

	_, err := client.PricePut(context.Background(), testRequest())
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}

	// Should have attempted 3 times (initial + 2 retries)
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestSweep_RetriesServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		put := 3.0
		json.NewEncoder(w).Encode(SweepResponse{RunID: "abc", Model: "bs", Rows: []SweepRow{{Eta: 0.25, N: 10, Alpha: 1.5, Put: &put}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, 10, 30*time.Second, 10*time.Millisecond, 2, zap.NewNop())

	resp, err := client.Sweep(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 || len(resp.Rows) != 1 || *resp.Rows[0].Put != 3.0 {
		t.Errorf("unexpected result: attempts=%d resp=%+v", attempts, resp)
	}
}
