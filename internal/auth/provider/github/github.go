package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/logger"
)

const providerName = "github"

var (
	// ErrExchange covers a code/state pair rejected by GitHub.
	ErrExchange = errors.New("github: code exchange failed")

	// ErrProfile covers a profile fetch failing after a successful exchange.
	ErrProfile = errors.New("github: profile fetch failed")
)

// Provider implements OAuth authentication against GitHub.com. GitHub OAuth
// apps do not speak OIDC, so after the code exchange the account profile is
// fetched from the REST API with the provider access token. The token is
// discarded when the call returns.
type Provider struct {
	oauthConfig *oauth2.Config
	apiBaseURL  string
	httpClient  *http.Client
}

func New(clientID, clientSecret, redirectURL string) (*Provider, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("github oauth config missing required fields")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     githuboauth.Endpoint,
		Scopes:       []string{"read:user"},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		apiBaseURL:  "https://api.github.com",
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the GitHub web-flow authorization URL.
func (p *Provider) AuthCodeURL() string {
	return p.oauthConfig.AuthCodeURL("", oauth2.SetAuthURLParam("allow_signup", "true"))
}

// ExchangeCode exchanges the authorization code and returns a normalized
// identity. GitHub's token endpoint accepts the original state as an extra
// form value; validation of it is GitHub's job, not ours.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	state string,
) (*auth.ExternalIdentity, error) {

	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	var opts []oauth2.AuthCodeOption
	if state != "" {
		opts = append(opts, oauth2.SetAuthURLParam("state", state))
	}

	tok, err := p.oauthConfig.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchange, err)
	}

	identity, err := p.fetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	logger.Info("github profile fetched", map[string]any{
		"login":           identity.LoginHandle,
		"subject_present": identity.ProviderUserID != "",
	})

	return identity, nil
}

type githubUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Name      string `json:"name"`
}

func (p *Provider) fetchProfile(ctx context.Context, accessToken string) (*auth.ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	client := p.httpClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrProfile, resp.StatusCode)
	}

	var u githubUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}

	if u.Login == "" {
		return nil, fmt.Errorf("%w: response missing login", ErrProfile)
	}

	return &auth.ExternalIdentity{
		Provider:       providerName,
		ProviderUserID: strconv.FormatInt(u.ID, 10),
		LoginHandle:    u.Login,
		DisplayName:    u.Name,
		AvatarURL:      u.AvatarURL,
		ProfileURL:     u.HTMLURL,
	}, nil
}
