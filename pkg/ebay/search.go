package ebay

import (
	"context"
	"net/url"
	"strconv"
)

const (
	searchPath   = "/buy/browse/v1/item_summary/search"
	defaultLimit = 50
)

// SearchRequest defines the parameters for an eBay search.
type SearchRequest struct {
	Query      string
	CategoryID string
	Limit      int
	Offset     int
	Sort       string // "newlyListed"
	Filter     string // e.g. "price:[10..50],priceCurrency:USD"
}

// SearchResponse holds one page of search results. HasMore reports
// whether eBay has a next page; SearchService never fetches it.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

type searchAPIResponse struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next"`
}

// SearchService exposes the Browse API item_summary resource.
type SearchService struct {
	client *Client
}

// NewSearchService creates a SearchService backed by c.
func NewSearchService(c *Client) *SearchService {
	return &SearchService{client: c}
}

// Search runs a single item_summary/search call.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	apiResp, err := Request[searchAPIResponse](ctx, s.client, buildSearchPath(req))
	if err != nil {
		return nil, err
	}

	return &SearchResponse{
		Items:   apiResp.ItemSummaries,
		Total:   apiResp.Total,
		Offset:  apiResp.Offset,
		Limit:   apiResp.Limit,
		HasMore: apiResp.Next != "",
	}, nil
}

func buildSearchPath(req SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)

	if req.CategoryID != "" {
		params.Set("category_ids", req.CategoryID)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}

	return searchPath + "?" + params.Encode()
}
