package ebay

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const (
	rateLimitPath = "/developer/analytics/v1_beta/rate_limit/"

	// BrowseResourceName is the Analytics API resource name for Browse API
	// calls.
	BrowseResourceName = "buy.browse"
)

// RateLimit is one API context in the Analytics rate_limit response.
type RateLimit struct {
	APIContext string     `json:"apiContext"`
	APIName    string     `json:"apiName"`
	APIVersion string     `json:"apiVersion"`
	Resources  []Resource `json:"resources"`
}

// Resource is one API resource with its rate limits.
type Resource struct {
	Name  string      `json:"name"`
	Rates []QuotaRate `json:"rates"`
}

// QuotaRate holds the quota state for a single resource and time window.
type QuotaRate struct {
	Count      int64  `json:"count"`
	Limit      int64  `json:"limit"`
	Remaining  int64  `json:"remaining"`
	Reset      string `json:"reset"`
	TimeWindow int64  `json:"timeWindow"`
}

type rateLimitResponse struct {
	RateLimits []RateLimit `json:"rateLimits"`
}

// QuotaState holds the parsed rate limit state for a single eBay API resource.
type QuotaState struct {
	Count      int64
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	TimeWindow time.Duration
}

// AnalyticsService reads application rate limits from the Developer
// Analytics API. It only reports quota; nothing in this package throttles.
type AnalyticsService struct {
	client *Client
}

// NewAnalyticsService creates an AnalyticsService backed by c.
func NewAnalyticsService(c *Client) *AnalyticsService {
	return &AnalyticsService{client: c}
}

// GetRateLimits returns the rate limits for apiContext/apiName, e.g.
// "buy"/"browse". Empty values are omitted from the query.
func (s *AnalyticsService) GetRateLimits(
	ctx context.Context,
	apiContext, apiName string,
) ([]RateLimit, error) {
	q := url.Values{}
	if apiContext != "" {
		q.Set("api_context", apiContext)
	}
	if apiName != "" {
		q.Set("api_name", apiName)
	}

	path := rateLimitPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := Request[rateLimitResponse](ctx, s.client, path)
	if err != nil {
		return nil, err
	}
	return resp.RateLimits, nil
}

// GetBrowseQuota returns the current quota of the buy.browse resource.
func (s *AnalyticsService) GetBrowseQuota(ctx context.Context) (*QuotaState, error) {
	limits, err := s.GetRateLimits(ctx, "buy", "browse")
	if err != nil {
		return nil, err
	}
	return QuotaFor(limits, BrowseResourceName)
}

// QuotaFor finds resourceName in limits and returns the state of its
// first rate window.
func QuotaFor(limits []RateLimit, resourceName string) (*QuotaState, error) {
	for _, entry := range limits {
		for _, res := range entry.Resources {
			if res.Name != resourceName {
				continue
			}
			if len(res.Rates) == 0 {
				return nil, fmt.Errorf("no rates found for resource %q", resourceName)
			}

			r := res.Rates[0]

			resetAt, err := time.Parse(time.RFC3339, r.Reset)
			if err != nil {
				return nil, fmt.Errorf("parsing reset time %q: %w", r.Reset, err)
			}

			return &QuotaState{
				Count:      r.Count,
				Limit:      r.Limit,
				Remaining:  r.Remaining,
				ResetAt:    resetAt,
				TimeWindow: time.Duration(r.TimeWindow) * time.Second,
			}, nil
		}
	}

	return nil, fmt.Errorf("resource %q not found in analytics response", resourceName)
}
