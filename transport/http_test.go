package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != defaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", got, defaultUserAgent)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Tarih,TP_DK_USD_S\n13-12-2011,1.8638\n"))
	}))
	defer srv.Close()

	tr := New(nil)
	resp, err := tr.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != "Tarih,TP_DK_USD_S\n13-12-2011,1.8638\n" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestGetNonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	resp, err := New(nil).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v, status decisions belong to the core", err)
	}
	if resp.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", resp.Status)
	}
}

func TestGetRetriesConnectionFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// Kill the connection without a response for the first two attempts.
		if calls.Load() < 3 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("server does not support hijacking")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := New(&Options{Attempts: 3}).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v after retries", err)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("Body = %q, want ok", resp.Body)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d calls, want 3", calls.Load())
	}
}

func TestGetExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		conn.Close()
	}))
	defer srv.Close()

	_, err := New(&Options{Attempts: 2}).Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Get() should fail once attempts are exhausted")
	}
	if calls.Load() != 2 {
		t.Errorf("server saw %d calls, want 2", calls.Load())
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(&Options{Attempts: 3}).Get(ctx, srv.URL)
	if err == nil {
		t.Fatal("Get() should fail on cancelled context")
	}
	// A cancelled context must not trigger further attempts.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancellation took %v, retries likely ignored the context", elapsed)
	}
}

func TestDefaults(t *testing.T) {
	tr := New(nil)
	if tr.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", tr.timeout, DefaultTimeout)
	}
	if tr.attempts != DefaultAttempts {
		t.Errorf("attempts = %d, want %d", tr.attempts, DefaultAttempts)
	}
}
