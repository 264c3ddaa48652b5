// Package oauth talks to the GitHub OAuth2 identity provider.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
)

const defaultAPIBaseURL = "https://api.github.com"

var (
	ErrExchangeFailed  = errors.New("oauth code exchange failed")
	ErrNoVerifiedEmail = errors.New("no verified primary email on provider account")
)

// Options configures a GitHubProvider. Endpoint and APIBaseURL default to
// github.com.
type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
	APIBaseURL   string
	// HTTPClient is used for the token exchange and API calls when set.
	HTTPClient *http.Client
}

// GitHubProvider runs the authorization code flow and reads the signed-in
// account's profile.
type GitHubProvider struct {
	config     *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

func NewGitHubProvider(opts Options) *GitHubProvider {
	endpoint := opts.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = github.Endpoint
	}
	base := strings.TrimRight(opts.APIBaseURL, "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBaseURL: base,
		httpClient: opts.HTTPClient,
	}
}

// AuthCodeURL returns the provider URL the browser is redirected to.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Identity exchanges code for a token and returns the account it belongs to.
// When the profile hides its email the primary verified address is used.
func (p *GitHubProvider) Identity(ctx context.Context, code string) (*entities.Identity, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	client := p.config.Client(ctx, token)

	var user githubUser
	if err := p.getJSON(ctx, client, "/user", &user); err != nil {
		return nil, err
	}

	email := user.Email
	if email == "" {
		var emails []githubEmail
		if err := p.getJSON(ctx, client, "/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
	}
	if email == "" {
		return nil, ErrNoVerifiedEmail
	}

	return &entities.Identity{
		ProviderID: strconv.FormatInt(user.ID, 10),
		Login:      user.Login,
		Email:      email,
		Name:       user.Name,
		AvatarURL:  user.AvatarURL,
	}, nil
}

func (p *GitHubProvider) getJSON(ctx context.Context, client *http.Client, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github %s: decode: %w", path, err)
	}
	return nil
}
