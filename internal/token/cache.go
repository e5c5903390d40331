package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jmorales/seatscout/internal/model"
)

// ErrCredentialsMissing is returned when no client credentials are
// configured for the requested vendor.
var ErrCredentialsMissing = errors.New("vendor credentials missing")

// ExchangeError represents a failed token exchange.
// StatusCode is 0 when the failure happened before an HTTP status was
// received (transport error or timeout).
type ExchangeError struct {
	Vendor     string
	StatusCode int
	Err        error
}

func (e *ExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("token exchange for %s failed: %v", e.Vendor, e.Err)
	}
	return fmt.Sprintf("token exchange for %s failed: status %d", e.Vendor, e.StatusCode)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// CredentialSource provides per-vendor client credentials.
type CredentialSource interface {
	Get(vendorID string) (model.VendorCredentials, bool)
}

// Endpoint describes where and how to exchange credentials for a vendor.
type Endpoint struct {
	URL   string // Token endpoint URL
	Scope string // Optional scope parameter, "" to omit
}

// Cache holds one valid token per vendor and refreshes on demand.
type Cache struct {
	src       CredentialSource
	endpoints map[string]Endpoint

	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	mu     sync.RWMutex
	tokens map[string]*model.VendorToken

	group singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient sets a custom HTTP client for token exchanges.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Cache) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates a token cache over the given credential source and
// per-vendor token endpoints.
func NewCache(src CredentialSource, endpoints map[string]Endpoint, opts ...Option) *Cache {
	c := &Cache{
		src:       src,
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
		now:    time.Now,
		tokens: make(map[string]*model.VendorToken),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetToken returns a valid token for the vendor, reusing the cached one
// when it has not expired. Concurrent callers share a single exchange.
func (c *Cache) GetToken(ctx context.Context, vendorID string) (*model.VendorToken, error) {
	if tok := c.cached(vendorID); tok != nil {
		return tok, nil
	}

	// The exchange runs detached from any single caller's context so one
	// cancelled caller cannot fail the waiters sharing the flight. The
	// exchange carries its own timeout via the HTTP client.
	ch := c.group.DoChan(vendorID, func() (any, error) {
		// Re-check: a flight that finished between our cache miss and
		// joining the group may already have stored a fresh token.
		if tok := c.cached(vendorID); tok != nil {
			return tok, nil
		}
		return c.exchange(vendorID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.VendorToken), nil
	}
}

// Invalidate drops the cached token for a vendor, forcing the next
// GetToken to exchange. Used after a vendor rejects a token as stale.
func (c *Cache) Invalidate(vendorID string) {
	c.mu.Lock()
	delete(c.tokens, vendorID)
	c.mu.Unlock()
}

// cached returns the stored token if it is still valid, else nil.
func (c *Cache) cached(vendorID string) *model.VendorToken {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tok := c.tokens[vendorID]
	if tok.Valid(c.now()) {
		return tok
	}
	return nil
}

// exchange performs the HTTP client-credentials exchange and stores the
// result. Only a completed exchange ever touches the cache.
func (c *Cache) exchange(vendorID string) (*model.VendorToken, error) {
	creds, ok := c.src.Get(vendorID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", vendorID, ErrCredentialsMissing)
	}

	ep, ok := c.endpoints[vendorID]
	if !ok {
		return nil, fmt.Errorf("no token endpoint configured for vendor %q", vendorID)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if ep.Scope != "" {
		form.Set("scope", ep.Scope)
	}

	req, err := http.NewRequest(http.MethodPost, ep.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExchangeError{Vendor: vendorID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExchangeError{Vendor: vendorID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ExchangeError{Vendor: vendorID, StatusCode: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &ExchangeError{Vendor: vendorID, StatusCode: resp.StatusCode, Err: err}
	}
	if tr.AccessToken == "" {
		return nil, &ExchangeError{Vendor: vendorID, StatusCode: resp.StatusCode, Err: errors.New("empty access_token")}
	}

	tok := &model.VendorToken{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		ExpiresIn:   tr.ExpiresIn,
		IssuedAt:    c.now().UnixMilli(),
	}

	c.mu.Lock()
	c.tokens[vendorID] = tok
	c.mu.Unlock()

	c.logger.Debug("token exchanged",
		"vendor", vendorID,
		"expires_in", tok.ExpiresIn,
		"duration", c.now().Sub(start),
	)

	return tok, nil
}

// tokenResponse is the vendor OAuth endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}
