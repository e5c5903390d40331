package token

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmorales/seatscout/internal/model"
)

type stubCreds map[string]model.VendorCredentials

func (s stubCreds) Get(vendorID string) (model.VendorCredentials, bool) {
	c, ok := s[vendorID]
	return c, ok
}

func newTokenServer(t *testing.T, exchanges *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			t.Errorf("basic auth = %q/%q/%v, want client-id/client-secret", user, pass, ok)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}

		exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer","expires_in":3600}`))
	}))
}

func newTestCache(src CredentialSource, tokenURL string) *Cache {
	return NewCache(src, map[string]Endpoint{
		"stubhub": {URL: tokenURL},
	})
}

func TestGetTokenCachesWithinValidity(t *testing.T) {
	var exchanges atomic.Int64
	server := newTokenServer(t, &exchanges)
	defer server.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	first, err := cache.GetToken(context.Background(), "stubhub")
	if err != nil {
		t.Fatalf("first GetToken: %v", err)
	}
	second, err := cache.GetToken(context.Background(), "stubhub")
	if err != nil {
		t.Fatalf("second GetToken: %v", err)
	}

	if first != second {
		t.Error("second call should return the identical cached token")
	}
	if n := exchanges.Load(); n != 1 {
		t.Errorf("exchanges = %d, want 1", n)
	}
}

func TestGetTokenRefreshesAfterExpiry(t *testing.T) {
	var exchanges atomic.Int64
	server := newTokenServer(t, &exchanges)
	defer server.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	base := time.Now()
	cache.now = func() time.Time { return base }

	if _, err := cache.GetToken(context.Background(), "stubhub"); err != nil {
		t.Fatalf("GetToken: %v", err)
	}

	// Advance past expires_in minus the safety margin.
	cache.now = func() time.Time { return base.Add(56 * time.Minute) }

	if _, err := cache.GetToken(context.Background(), "stubhub"); err != nil {
		t.Fatalf("GetToken after expiry: %v", err)
	}

	if n := exchanges.Load(); n != 2 {
		t.Errorf("exchanges = %d, want 2 (one initial, one after expiry)", n)
	}
}

func TestGetTokenCoalescesConcurrentExchanges(t *testing.T) {
	var exchanges atomic.Int64
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer","expires_in":3600}`))
	}))
	defer slow.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, slow.URL)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.GetToken(context.Background(), "stubhub"); err != nil {
				t.Errorf("GetToken: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := exchanges.Load(); n != 1 {
		t.Errorf("exchanges = %d, want 1 (in-flight coalescing)", n)
	}
}

func TestGetTokenMissingCredentials(t *testing.T) {
	cache := newTestCache(stubCreds{}, "http://unused.invalid")

	_, err := cache.GetToken(context.Background(), "stubhub")
	if !errors.Is(err, ErrCredentialsMissing) {
		t.Errorf("err = %v, want ErrCredentialsMissing", err)
	}
}

func TestGetTokenExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	_, err := cache.GetToken(context.Background(), "stubhub")

	var exchErr *ExchangeError
	if !errors.As(err, &exchErr) {
		t.Fatalf("err = %T, want *ExchangeError", err)
	}
	if exchErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want %d", exchErr.StatusCode, http.StatusForbidden)
	}
}

func TestGetTokenMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":`))
	}))
	defer server.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	_, err := cache.GetToken(context.Background(), "stubhub")
	var exchErr *ExchangeError
	if !errors.As(err, &exchErr) {
		t.Fatalf("err = %T, want *ExchangeError", err)
	}
}

func TestGetTokenScopeParameter(t *testing.T) {
	var gotScope string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotScope = r.PostForm.Get("scope")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	src := stubCreds{"ticketmaster": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := NewCache(src, map[string]Endpoint{
		"ticketmaster": {URL: server.URL, Scope: "discovery"},
	})

	if _, err := cache.GetToken(context.Background(), "ticketmaster"); err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if gotScope != "discovery" {
		t.Errorf("scope = %q, want %q", gotScope, "discovery")
	}
}

func TestGetTokenCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()
	defer close(release)

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := cache.GetToken(ctx, "stubhub")
		errCh <- err
	}()

	<-started
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestInvalidateForcesExchange(t *testing.T) {
	var exchanges atomic.Int64
	server := newTokenServer(t, &exchanges)
	defer server.Close()

	src := stubCreds{"stubhub": {ClientID: "client-id", ClientSecret: "client-secret"}}
	cache := newTestCache(src, server.URL)

	if _, err := cache.GetToken(context.Background(), "stubhub"); err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	cache.Invalidate("stubhub")
	if _, err := cache.GetToken(context.Background(), "stubhub"); err != nil {
		t.Fatalf("GetToken after invalidate: %v", err)
	}

	if n := exchanges.Load(); n != 2 {
		t.Errorf("exchanges = %d, want 2", n)
	}
}
