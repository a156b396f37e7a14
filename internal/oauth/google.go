// Package oauth holds the identity-provider adapters used by the auth
// endpoints. Only Google is supported today.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	googleAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleProfileURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleUserInfo is the subset of the userinfo payload the app needs.
type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleProvider builds consent URLs and resolves provider access tokens to
// user identities. The mobile client completes the consent flow itself and
// hands the backend the resulting access token.
type GoogleProvider struct {
	clientID    string
	redirectURL string
	httpClient  *http.Client
}

// NewGoogleProvider creates a Google OAuth2 provider.
func NewGoogleProvider(clientID, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		clientID:    clientID,
		redirectURL: redirectURL,
		httpClient:  &http.Client{},
	}
}

// AuthURL returns the Google consent screen URL the login endpoint
// redirects to.
func (g *GoogleProvider) AuthURL() string {
	params := url.Values{
		"client_id":     {g.clientID},
		"redirect_uri":  {g.redirectURL},
		"response_type": {"token"},
		"scope":         {"openid email profile"},
	}
	return fmt.Sprintf("%s?%s", googleAuthURL, params.Encode())
}

// FetchUserInfo exchanges a provider access token for the user's identity.
func (g *GoogleProvider) FetchUserInfo(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google: userinfo failed (%d): %s", resp.StatusCode, string(body))
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google: decode userinfo: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google: userinfo missing id")
	}

	return &info, nil
}
