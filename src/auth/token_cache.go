// Package auth exchanges the long-lived Font Awesome API token for short-lived
// access tokens and caches them until they are about to expire.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/igorls/fontawesome-mcp/src/json"
)

// DefaultTokenURL is the Font Awesome token exchange endpoint.
const DefaultTokenURL = "https://api.fontawesome.com/token"

// ExpiryBuffer is how long before expiry a cached credential is considered stale.
const ExpiryBuffer = 300 * time.Second

var (
	// ErrNoAPIToken is returned when no API token was configured.
	ErrNoAPIToken = errors.New("no Font Awesome API token configured, set FA_TOKEN")
	// ErrAuthFailed wraps every failed token exchange.
	ErrAuthFailed = errors.New("access token exchange failed")
)

// Credential is a bearer token with its absolute expiry and granted scopes.
type Credential struct {
	Token     string
	ExpiresAt int64 // unix seconds
	Scopes    []string
}

// Fresh reports whether c can still be used at now.
func (c Credential) Fresh(now time.Time) bool {
	return c.Token != "" && now.Unix() < c.ExpiresAt-int64(ExpiryBuffer/time.Second)
}

// HasScope reports whether scope was granted.
func (c Credential) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// tokenResponse holds the fields returned by the token endpoint.
type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	Scopes      []string `json:"scopes"`
}

// TokenCache owns the access credential. It is safe for concurrent use, but
// two callers hitting a cold cache at once may both perform an exchange; the
// later one wins.
type TokenCache struct {
	apiToken string
	tokenURL string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	cred *Credential
}

// Option configures a TokenCache.
type Option func(*TokenCache)

// WithTokenURL overrides the exchange endpoint.
func WithTokenURL(u string) Option {
	return func(c *TokenCache) {
		if u != "" {
			c.tokenURL = u
		}
	}
}

// WithHTTPClient sets the client used for exchanges.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *TokenCache) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *TokenCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewTokenCache creates a cache exchanging apiToken for access tokens.
func NewTokenCache(apiToken string, opts ...Option) *TokenCache {
	c := &TokenCache{
		apiToken: strings.TrimSpace(apiToken),
		tokenURL: DefaultTokenURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIToken reports whether an API token was configured at all.
func (c *TokenCache) HasAPIToken() bool {
	return c.apiToken != ""
}

// Acquire returns a fresh credential, exchanging the API token when the cached
// one is missing or within ExpiryBuffer of expiry. On failure the previously
// held credential is kept but never handed out.
func (c *TokenCache) Acquire(ctx context.Context) (Credential, error) {
	if c.apiToken == "" {
		return Credential{}, ErrNoAPIToken
	}

	now := c.now()
	c.mu.Lock()
	if c.cred != nil && c.cred.Fresh(now) {
		cred := *c.cred
		c.mu.Unlock()
		return cred, nil
	}
	c.mu.Unlock()

	c.logger.Debug("requesting new access token", "url", c.tokenURL)
	cred, err := c.exchange(ctx, now)
	if err != nil {
		c.logger.Warn("access token exchange failed", "error", err)
		return Credential{}, err
	}

	c.mu.Lock()
	c.cred = &cred
	c.mu.Unlock()

	c.logger.Info("access token obtained", "scopes", strings.Join(cred.Scopes, ","), "expires_at", cred.ExpiresAt)
	return cred, nil
}

// Cached returns the held credential if it is still fresh.
func (c *TokenCache) Cached() (Credential, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred == nil || !c.cred.Fresh(c.now()) {
		return Credential{}, false
	}
	return *c.cred, true
}

// Scopes returns the scopes of the last acquired credential.
func (c *TokenCache) Scopes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred == nil {
		return nil
	}
	return slices.Clone(c.cred.Scopes)
}

// HasProAccess acquires a credential and checks it carries an SVG scope.
func (c *TokenCache) HasProAccess(ctx context.Context) bool {
	cred, err := c.Acquire(ctx)
	if err != nil {
		return false
	}
	return cred.HasScope("svg_icons_pro") || cred.HasScope("svg_icons_free")
}

// Invalidate drops the cached credential.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()
}

func (c *TokenCache) exchange(ctx context.Context, now time.Time) (Credential, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, nil)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Credential{}, fmt.Errorf("%w: %s %s", ErrAuthFailed, resp.Status, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Credential{}, fmt.Errorf("%w: decode response: %v", ErrAuthFailed, err)
	}
	if tr.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: empty access_token", ErrAuthFailed)
	}

	return Credential{
		Token:     tr.AccessToken,
		ExpiresAt: now.Unix() + tr.ExpiresIn,
		Scopes:    tr.Scopes,
	}, nil
}
