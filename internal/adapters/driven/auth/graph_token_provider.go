// Package auth provides Microsoft identity platform access tokens for the
// Graph mailer via the OAuth2 client-credentials flow.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

// Ensure GraphTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*GraphTokenProvider)(nil)

const (
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	graphScope     = "https://graph.microsoft.com/.default"

	// refreshBuffer retires a cached token slightly before its real expiry so
	// an in-flight send never carries a token that dies mid-request.
	refreshBuffer = 5 * time.Minute
)

// cachedToken is the on-disk token cache format.
type cachedToken struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry"`
}

// GraphTokenProvider acquires app-only Graph tokens and caches them in memory
// and in a cache file so consecutive runs skip the token endpoint.
type GraphTokenProvider struct {
	conf      *clientcredentials.Config
	cachePath string

	mu     sync.RWMutex
	token  string
	expiry time.Time
}

// NewGraphTokenProvider creates a provider for the given tenant and app
// registration. cachePath may be empty to disable the file cache.
func NewGraphTokenProvider(tenantID, clientID, clientSecret, cachePath string) (*GraphTokenProvider, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("graph credentials incomplete: %w", domain.ErrInvalidInput)
	}

	return &GraphTokenProvider{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     fmt.Sprintf(tokenURLFormat, tenantID),
			Scopes:       []string{graphScope},
		},
		cachePath: cachePath,
	}, nil
}

// GetToken returns a valid access token, fetching a new one if the cached
// token is missing or close to expiry.
func (p *GraphTokenProvider) GetToken(ctx context.Context) (string, error) {
	// Fast path: check cache with read lock
	p.mu.RLock()
	if p.token != "" && time.Now().Before(p.expiry) {
		token := p.token
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.token != "" && time.Now().Before(p.expiry) {
		return p.token, nil
	}

	if cached, ok := p.loadCacheFile(); ok {
		p.token = cached.AccessToken
		p.expiry = cached.Expiry
		return p.token, nil
	}

	tok, err := p.conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("get token: %w", errors.Join(domain.ErrTokenRefreshFailed, err))
	}

	p.token = tok.AccessToken
	p.expiry = tok.Expiry.Add(-refreshBuffer)
	if tok.Expiry.IsZero() {
		p.expiry = time.Now().Add(30 * time.Minute)
	}

	p.saveCacheFile()

	return p.token, nil
}

// Invalidate clears the cached token in memory and on disk. The next GetToken
// call hits the token endpoint again.
func (p *GraphTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = ""
	p.expiry = time.Time{}

	if p.cachePath != "" {
		if err := os.Remove(p.cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Logger.Warnw("removing token cache file", "path", p.cachePath, "error", err)
		}
	}
}

// loadCacheFile returns a still-valid token from the cache file, if any.
// Cache problems are never fatal; the provider just fetches a fresh token.
func (p *GraphTokenProvider) loadCacheFile() (cachedToken, bool) {
	if p.cachePath == "" {
		return cachedToken{}, false
	}

	raw, err := os.ReadFile(p.cachePath)
	if err != nil {
		return cachedToken{}, false
	}

	var cached cachedToken
	if err := json.Unmarshal(raw, &cached); err != nil {
		logger.Logger.Debugw("discarding unreadable token cache", "path", p.cachePath, "error", err)
		return cachedToken{}, false
	}
	if cached.AccessToken == "" || time.Now().After(cached.Expiry) {
		return cachedToken{}, false
	}

	return cached, true
}

func (p *GraphTokenProvider) saveCacheFile() {
	if p.cachePath == "" {
		return
	}

	raw, err := json.Marshal(cachedToken{AccessToken: p.token, Expiry: p.expiry})
	if err != nil {
		return
	}

	if dir := filepath.Dir(p.cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			logger.Logger.Warnw("creating token cache directory", "path", dir, "error", err)
			return
		}
	}
	if err := os.WriteFile(p.cachePath, raw, 0600); err != nil {
		logger.Logger.Warnw("writing token cache file", "path", p.cachePath, "error", err)
	}
}
