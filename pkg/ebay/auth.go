package ebay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/donaldgifford/ebaynet/internal/metrics"
)

const (
	defaultScope  = "https://api.ebay.com/oauth/api_scope"
	refreshBuffer = 60 * time.Second
)

// Token is an OAuth2 access token as handed to the client.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// Authenticator supplies the bearer token attached to every request.
// Implementations own any caching or refresh; Client asks for a token
// on every call.
type Authenticator interface {
	Token(ctx context.Context) (*Token, error)
}

// OAuthAuthenticator implements Authenticator using the eBay OAuth2
// client credentials flow. It caches tokens and refreshes automatically
// when expired or within 60 seconds of expiry. Thread-safe via mutex.
type OAuthAuthenticator struct {
	config *clientcredentials.Config
	client *http.Client

	mu      sync.Mutex
	token   *Token
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the OAuthAuthenticator.
type OAuthOption func(*OAuthAuthenticator)

// WithTokenURL overrides the token endpoint derived from the environment.
func WithTokenURL(u string) OAuthOption {
	return func(a *OAuthAuthenticator) {
		a.config.TokenURL = u
	}
}

// WithScopes replaces the default public API scope.
func WithScopes(scopes ...string) OAuthOption {
	return func(a *OAuthAuthenticator) {
		a.config.Scopes = scopes
	}
}

// WithTokenHTTPClient overrides the HTTP client used for token requests.
func WithTokenHTTPClient(c *http.Client) OAuthOption {
	return func(a *OAuthAuthenticator) {
		a.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(a *OAuthAuthenticator) {
		a.nowFunc = f
	}
}

// NewOAuthAuthenticator creates an application-token authenticator for
// the given environment. appID and certID are the keyset's client ID and
// client secret.
func NewOAuthAuthenticator(
	env Environment,
	appID, certID string,
	opts ...OAuthOption,
) *OAuthAuthenticator {
	a := &OAuthAuthenticator{
		config: &clientcredentials.Config{
			ClientID:     appID,
			ClientSecret: certID,
			TokenURL:     NewURLService(env).TokenURL(),
			Scopes:       []string{defaultScope},
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		client:  &http.Client{Timeout: 10 * time.Second},
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Token returns a valid access token, refreshing if necessary.
func (a *OAuthAuthenticator) Token(ctx context.Context) (*Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != nil && a.nowFunc().Before(a.token.Expiry.Add(-refreshBuffer)) {
		return a.token, nil
	}

	return a.refreshLocked(ctx)
}

func (a *OAuthAuthenticator) refreshLocked(ctx context.Context) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)

	tok, err := a.config.Token(ctx)
	if err != nil {
		metrics.TokenFetchErrorsTotal.Inc()

		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return nil, fmt.Errorf(
				"token request failed (status %d): %s - %s",
				re.Response.StatusCode,
				re.ErrorCode,
				re.ErrorDescription,
			)
		}
		return nil, fmt.Errorf("fetching token: %w", err)
	}

	a.token = &Token{
		AccessToken: tok.AccessToken,
		Expiry:      tok.Expiry,
	}
	return a.token, nil
}

type tokenSourceAuthenticator struct {
	src oauth2.TokenSource
}

// TokenSourceAuthenticator adapts an oauth2.TokenSource, for example a
// user-token flow managed by the caller. The source should do its own
// caching; wrap it with oauth2.ReuseTokenSource if it does not.
func TokenSourceAuthenticator(src oauth2.TokenSource) Authenticator {
	return &tokenSourceAuthenticator{src: src}
}

func (t *tokenSourceAuthenticator) Token(_ context.Context) (*Token, error) {
	tok, err := t.src.Token()
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// StaticToken is an Authenticator that always returns the same token.
type StaticToken string

// Token implements Authenticator.
func (s StaticToken) Token(_ context.Context) (*Token, error) {
	if s == "" {
		return nil, errors.New("static token is empty")
	}
	return &Token{AccessToken: string(s)}, nil
}
