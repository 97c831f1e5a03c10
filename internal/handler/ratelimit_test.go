package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frotaops/frota/internal/handler"
)

func TestTokenBucket_BurstThenDenied(t *testing.T) {
	tb := handler.NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("key") {
			t.Fatalf("request %d within capacity must be allowed", i)
		}
	}
	if tb.Allow("key") {
		t.Fatal("request beyond capacity must be denied")
	}
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	tb := handler.NewTokenBucket(1, 1)

	if !tb.Allow("a") {
		t.Fatal("first request for key a must be allowed")
	}
	if tb.Allow("a") {
		t.Fatal("second request for key a must be denied")
	}
	if !tb.Allow("b") {
		t.Fatal("key b must have its own bucket")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	tb := handler.NewTokenBucket(1000, 1)

	if !tb.Allow("key") {
		t.Fatal("first request must be allowed")
	}
	if tb.Allow("key") {
		t.Fatal("bucket must be empty immediately after")
	}

	time.Sleep(5 * time.Millisecond)
	if !tb.Allow("key") {
		t.Fatal("bucket must refill over time")
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	tb := handler.NewTokenBucket(0.001, 1)
	called := 0
	h := handler.RateLimit(tb, func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/vehicles", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		h(rec, req)

		if i == 0 && rec.Code != http.StatusNoContent {
			t.Fatalf("first request must pass, got %d", rec.Code)
		}
		if i == 1 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("second request must be limited, got %d", rec.Code)
		}
	}
	if called != 1 {
		t.Fatalf("handler must run exactly once, ran %d times", called)
	}
}
