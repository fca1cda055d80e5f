package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

// tokenLeeway is the minimum remaining lifetime before a token is refreshed
const tokenLeeway = 60 * time.Second

// TokenStore persists rotated credentials
type TokenStore interface {
	UpdateTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error
}

// TokenManager keeps platform access tokens fresh. Refresh tokens are
// single-use: every refresh rotates and persists the pair.
type TokenManager struct {
	authBase string
	clientID string
	store    TokenStore
	client   *http.Client
	now      func() time.Time
}

// NewTokenManager creates a token manager backed by the given store
func NewTokenManager(cfg config.PlatformConfig, store TokenStore) *TokenManager {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &TokenManager{
		authBase: strings.TrimSuffix(cfg.AuthBase, "/"),
		clientID: cfg.ClientID,
		store:    store,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// tokenResponse is the OAuth refresh grant response
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Ensure returns a valid access token for the user, refreshing first when
// less than a minute of lifetime remains. The user struct is updated in
// place and the rotated pair is persisted.
func (m *TokenManager) Ensure(ctx context.Context, user *domain.User) (string, error) {
	if user.AccessToken != "" && user.TokenExpiresAt.After(m.now().Add(tokenLeeway)) {
		return user.AccessToken, nil
	}
	if user.RefreshToken == "" {
		// nothing to refresh with, hand back whatever we have
		return user.AccessToken, nil
	}

	tok, err := m.refresh(ctx, user.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token for user %d: %w", user.ID, err)
	}

	user.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" { // refresh tokens are single-use, keep the new one
		user.RefreshToken = tok.RefreshToken
	}
	expiresIn := tok.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}
	user.TokenExpiresAt = m.now().Add(time.Duration(expiresIn) * time.Second)

	if err := m.store.UpdateTokens(ctx, user.ID, user.AccessToken, user.RefreshToken, user.TokenExpiresAt); err != nil {
		return "", fmt.Errorf("persist rotated tokens for user %d: %w", user.ID, err)
	}

	lgr.Printf("[INFO] refreshed platform token for user %d, expires %s", user.ID, user.TokenExpiresAt.Format(time.RFC3339))
	return user.AccessToken, nil
}

// refresh exchanges a refresh token for a new token pair
func (m *TokenManager) refresh(ctx context.Context, refreshToken string) (*tokenResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {m.clientID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authBase+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("make token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &tok, nil
}
