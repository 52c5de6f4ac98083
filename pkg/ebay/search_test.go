package ebay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        ebay.SearchRequest
		handler    http.HandlerFunc
		wantErr    bool
		errContain string
		wantItems  int
		wantMore   bool
	}{
		{
			name: "successful search with results",
			req:  ebay.SearchRequest{Query: "32GB DDR4 ECC", Limit: 10},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/buy/browse/v1/item_summary/search", r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "*", r.Header.Get("X-EBAY-C-ENDUSERCTX"))
				assert.Equal(t, "32GB DDR4 ECC", r.URL.Query().Get("q"))
				assert.Equal(t, "10", r.URL.Query().Get("limit"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"itemSummaries": [
						{"itemId": "v1|1|0", "title": "Item 1", "price": {"value": "10.00", "currency": "USD"}, "itemWebUrl": "https://ebay.com/1"},
						{"itemId": "v1|2|0", "title": "Item 2", "price": {"value": "20.00", "currency": "USD"}, "itemWebUrl": "https://ebay.com/2"}
					],
					"total": 100,
					"offset": 0,
					"limit": 10,
					"next": "https://api.ebay.com/buy/browse/v1/item_summary/search?q=test&offset=10"
				}`))
			},
			wantItems: 2,
			wantMore:  true,
		},
		{
			name: "empty results",
			req:  ebay.SearchRequest{Query: "nonexistent item xyz"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"itemSummaries": [], "total": 0, "offset": 0, "limit": 50}`))
			},
			wantItems: 0,
			wantMore:  false,
		},
		{
			name: "429 rate limited response",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Rate limit exceeded"}]}`))
			},
			wantErr:    true,
			errContain: "status 429",
		},
		{
			name: "invalid JSON response",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not valid json"))
			},
			wantErr:    true,
			errContain: "parsing response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := ebay.NewClient(staticAuth(t, "test-token"), ebay.WithBaseURL(srv.URL))

			resp, err := ebay.NewSearchService(client).Search(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				var apiErr *ebay.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.Equal(t, tt.wantMore, resp.HasMore)
		})
	}
}

func TestSearchService_QueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       ebay.SearchRequest
		wantQuery map[string]string
	}{
		{
			name: "basic query with defaults",
			req:  ebay.SearchRequest{Query: "DDR4 ECC"},
			wantQuery: map[string]string{
				"q":     "DDR4 ECC",
				"limit": "50",
			},
		},
		{
			name: "with category, sort, and filter",
			req: ebay.SearchRequest{
				Query:      "server ram",
				CategoryID: "170083",
				Sort:       "newlyListed",
				Filter:     "price:[10..50],priceCurrency:USD",
				Limit:      25,
			},
			wantQuery: map[string]string{
				"q":            "server ram",
				"category_ids": "170083",
				"sort":         "newlyListed",
				"filter":       "price:[10..50],priceCurrency:USD",
				"limit":        "25",
			},
		},
		{
			name: "with offset",
			req: ebay.SearchRequest{
				Query:  "test",
				Limit:  10,
				Offset: 20,
			},
			wantQuery: map[string]string{
				"q":      "test",
				"limit":  "10",
				"offset": "20",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					for k, v := range tt.wantQuery {
						assert.Equalf(t, v, r.URL.Query().Get(k), "query param %q", k)
					}
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(`{"itemSummaries":[],"total":0,"offset":0,"limit":50}`))
				}),
			)
			defer srv.Close()

			client := ebay.NewClient(staticAuth(t, "test-token"), ebay.WithBaseURL(srv.URL))

			_, err := ebay.NewSearchService(client).Search(context.Background(), tt.req)
			require.NoError(t, err)
		})
	}
}
