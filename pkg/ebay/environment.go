package ebay

import (
	"fmt"
	"strings"
)

const (
	productionBaseURL = "https://api.ebay.com"
	sandboxBaseURL    = "https://api.sandbox.ebay.com"

	tokenPath = "/identity/v1/oauth2/token" //nolint:gosec // not a credential
)

// Environment selects which eBay API gateway requests are sent to.
type Environment int

const (
	// Production is the live eBay API. It is the zero value.
	Production Environment = iota
	// Sandbox is eBay's isolated test environment.
	Sandbox
)

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Sandbox:
		return "sandbox"
	default:
		return fmt.Sprintf("Environment(%d)", int(e))
	}
}

// ParseEnvironment converts a config or flag value into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production", "prod":
		return Production, nil
	case "sandbox":
		return Sandbox, nil
	default:
		return Production, fmt.Errorf("unknown eBay environment %q", s)
	}
}

// URLService resolves an Environment to the base URL of its API gateway.
type URLService struct {
	url string
}

// NewURLService returns the URLService for env. Unknown values fall back
// to Production.
func NewURLService(env Environment) URLService {
	if env == Sandbox {
		return URLService{url: sandboxBaseURL}
	}
	return URLService{url: productionBaseURL}
}

// CustomURLService wraps an arbitrary base URL, such as a local mock server.
func CustomURLService(base string) URLService {
	return URLService{url: strings.TrimRight(base, "/")}
}

// URL returns the base URL, without a trailing slash.
func (s URLService) URL() string {
	if s.url == "" {
		return productionBaseURL
	}
	return s.url
}

// TokenURL returns the OAuth2 token endpoint of the same gateway.
func (s URLService) TokenURL() string {
	return combineURL(s.URL(), tokenPath)
}

// combineURL joins base and path with exactly one slash between them.
func combineURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
