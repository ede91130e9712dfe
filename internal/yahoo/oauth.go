package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

const (
	authURL  = "https://api.login.yahoo.com/oauth2/request_auth"
	tokenURL = "https://api.login.yahoo.com/oauth2/get_token"
)

// OAuthConfig builds the Yahoo OAuth2 app config. Yahoo supports the
// out-of-band redirect, which keeps the one-time setup flow to a pasted
// verification code instead of a local callback server.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "oob",
		Scopes:       []string{"fspt-r"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

// LoadToken reads a cached token from disk.
func LoadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", path, err)
	}
	if tok.RefreshToken == "" {
		return nil, fmt.Errorf("token file %s has no refresh token; re-run setup", path)
	}
	return &tok, nil
}

// SaveToken writes a token to disk, tightly permissioned.
func SaveToken(path string, tok *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o600)
}

// persistingTokenSource wraps an oauth2.TokenSource and writes every
// refreshed token back to disk, so the server survives restarts without a
// fresh browser round trip. Yahoo access tokens expire hourly.
type persistingTokenSource struct {
	mu   sync.Mutex
	path string
	src  oauth2.TokenSource
	last *oauth2.Token
}

func newPersistingTokenSource(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, path string) *persistingTokenSource {
	return &persistingTokenSource{
		path: path,
		src:  cfg.TokenSource(ctx, tok),
		last: tok,
	}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if p.last == nil || tok.AccessToken != p.last.AccessToken {
		p.last = tok
		if err := SaveToken(p.path, tok); err != nil {
			// A failed cache write is not fatal to the request in hand.
			return tok, nil
		}
	}
	return tok, nil
}
