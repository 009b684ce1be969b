package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"souq_backend/internal/config"

	"golang.org/x/oauth2"
)

// Profile is the subset of the identity provider's userinfo document this
// system consumes.
type Profile struct {
	Subject     string
	DisplayName string
	Email       string
}

// Client performs the OAuth2 authorization-code flow against the configured
// identity provider and fetches the caller's profile.
type Client interface {
	AuthCodeURL(state string) string
	// FetchProfile exchanges the callback code and reads userinfo.
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

type client struct {
	oauth       *oauth2.Config
	userinfoURL string
}

func New(cfg *config.Config) Client {
	return &client{
		oauth: &oauth2.Config{
			ClientID:     cfg.Provider.ClientID,
			ClientSecret: cfg.Provider.ClientSecret,
			RedirectURL:  cfg.Provider.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.Provider.AuthURL,
				TokenURL: cfg.Provider.TokenURL,
			},
		},
		userinfoURL: cfg.Provider.UserinfoURL,
	}
}

func (c *client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

func (c *client) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := c.oauth.Client(ctx, token).Get(c.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo request returned %d: %s", resp.StatusCode, body)
	}

	// Providers disagree on field names; accept both the OIDC and the
	// legacy variants.
	var raw struct {
		Sub   string `json:"sub"`
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	profile := &Profile{
		Subject:     raw.Sub,
		DisplayName: raw.Name,
		Email:       raw.Email,
	}
	if profile.Subject == "" {
		profile.Subject = raw.ID
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("userinfo document carries no subject id")
	}
	return profile, nil
}
