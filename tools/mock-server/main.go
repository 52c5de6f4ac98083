// Package main implements a mock eBay API server for local development.
// It serves canned items from a JSON fixture to simulate the Browse API item
// endpoints, search, rate limits, and the OAuth token endpoint without
// requiring real eBay credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	applog "github.com/donaldgifford/ebaynet/pkg/logger"
)

type fixture struct {
	Items []json.RawMessage `json:"items"`
}

// indexedItem is a fixture item plus the fields the handlers look up by.
type indexedItem struct {
	raw       json.RawMessage
	itemID    string
	legacyID  string
	groupID   string
	titleLow  string
	variation bool
}

type itemKeys struct {
	ItemID           string `json:"itemId"`
	LegacyItemID     string `json:"legacyItemId"`
	Title            string `json:"title"`
	PrimaryItemGroup *struct {
		ItemGroupID string `json:"itemGroupId"`
	} `json:"primaryItemGroup"`
}

type errorDetail struct {
	ErrorID  int    `json:"errorId"`
	Domain   string `json:"domain"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type searchResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	Next          string            `json:"next,omitempty"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/items.json", "path to item fixture")
	logLevel := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := applog.NewWithWriter(os.Stdout, *logLevel, "text")

	items, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(items))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock eBay server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, items)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, items []indexedItem) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item/{item_id}", itemHandler(logger, items))
	// The escaped-query form is what the SDK sends; the plain query form is
	// what eBay documents. Both are served.
	mux.HandleFunc("GET /buy/browse/v1/item/get_item_by_legacy_id/{query}", legacyHandler(logger, items))
	mux.HandleFunc("GET /buy/browse/v1/item/get_item_by_legacy_id", legacyHandler(logger, items))
	mux.HandleFunc("GET /buy/browse/v1/item/get_items_by_item_group/{query}", groupHandler(logger, items))
	mux.HandleFunc("GET /buy/browse/v1/item/get_items_by_item_group", groupHandler(logger, items))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, items))
	mux.HandleFunc("GET /developer/analytics/v1_beta/rate_limit/", rateLimitHandler())
	return mux
}

func loadFixture(path string) ([]indexedItem, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	items := make([]indexedItem, 0, len(f.Items))
	for i, raw := range f.Items {
		var k itemKeys
		if err := json.Unmarshal(raw, &k); err != nil {
			return nil, fmt.Errorf("parsing fixture item %d: %w", i, err)
		}
		it := indexedItem{
			raw:      raw,
			itemID:   k.ItemID,
			legacyID: k.LegacyItemID,
			titleLow: strings.ToLower(k.Title),
		}
		if k.PrimaryItemGroup != nil {
			it.groupID = k.PrimaryItemGroup.ItemGroupID
			it.variation = true
		}
		items = append(items, it)
	}
	return items, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.EscapedPath(),
			"query", r.URL.RawQuery,
			"marketplace", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"),
		)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, errorID int, msg string) {
	category := "REQUEST"
	if status >= http.StatusInternalServerError {
		category = "APPLICATION"
	}
	writeJSON(w, status, map[string][]errorDetail{
		"errors": {{ErrorID: errorID, Domain: "API_BROWSE", Category: category, Message: msg}},
	})
}

// requireBearer rejects requests without an Authorization bearer token.
func requireBearer(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeError(w, http.StatusUnauthorized, 1001, "Invalid access token.")
		return false
	}
	return true
}

// queryParam returns key from the request's query string, or from the
// {query} path segment when the query was sent escaped inside the path
// (e.g. "%3Flegacy_item_id%3D123").
func queryParam(r *http.Request, key string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	seg := strings.TrimPrefix(r.PathValue("query"), "?")
	values, err := url.ParseQuery(seg)
	if err != nil {
		return ""
	}
	return values.Get(key)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate Basic Auth header is present (don't verify creds).
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

func itemHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		id := r.PathValue("item_id")
		for _, it := range items {
			if it.itemID == id {
				writeJSON(w, http.StatusOK, it.raw)
				logger.Info("item", "item_id", id)
				return
			}
		}
		writeError(w, http.StatusNotFound, 11001, "The specified item Id was not found.")
	}
}

func legacyHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		legacyID := queryParam(r, "legacy_item_id")
		if legacyID == "" {
			writeError(w, http.StatusBadRequest, 11006, "The legacy Id is invalid.")
			return
		}
		for _, it := range items {
			if it.legacyID != legacyID {
				continue
			}
			if it.variation {
				// eBay requires a variation id for multi-variation listings.
				writeError(w, http.StatusBadRequest, 11009,
					"The item is a multi-variation listing. Specify legacy_variation_id.")
				return
			}
			writeJSON(w, http.StatusOK, it.raw)
			logger.Info("legacy item", "legacy_item_id", legacyID)
			return
		}
		writeError(w, http.StatusNotFound, 11001, "The specified item Id was not found.")
	}
}

func groupHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		groupID := queryParam(r, "item_group_id")
		if groupID == "" {
			writeError(w, http.StatusBadRequest, 11502, "The item group Id is invalid.")
			return
		}
		var matched []json.RawMessage
		for _, it := range items {
			if it.groupID == groupID {
				matched = append(matched, it.raw)
			}
		}
		if len(matched) == 0 {
			writeError(w, http.StatusNotFound, 11503, "The specified item group Id was not found.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": matched})
		logger.Info("item group", "item_group_id", groupID, "items", len(matched))
	}
}

func searchHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		q := strings.ToLower(r.URL.Query().Get("q"))
		limitStr := r.URL.Query().Get("limit")
		offsetStr := r.URL.Query().Get("offset")

		limit := 50
		if limitStr != "" {
			if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
				limit = v
			}
		}
		offset := 0
		if offsetStr != "" {
			if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
				offset = v
			}
		}

		// Every word of the query must appear in the title.
		words := strings.Fields(q)
		var matched []json.RawMessage
		for _, it := range items {
			if containsAll(it.titleLow, words) {
				matched = append(matched, it.raw)
			}
		}

		total := len(matched)

		if offset >= len(matched) {
			matched = nil
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		next := ""
		if offset+limit < total {
			next = fmt.Sprintf("/buy/browse/v1/item_summary/search?q=%s&offset=%d&limit=%d",
				url.QueryEscape(r.URL.Query().Get("q")), offset+limit, limit)
		}

		resp := searchResponse{
			ItemSummaries: matched,
			Total:         total,
			Offset:        offset,
			Limit:         limit,
			Next:          next,
		}

		// Return empty array instead of null when no results.
		if resp.ItemSummaries == nil {
			resp.ItemSummaries = []json.RawMessage{}
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "offset", offset, "limit", limit)
	}
}

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

func rateLimitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		reset := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		writeJSON(w, http.StatusOK, map[string]any{
			"rateLimits": []map[string]any{{
				"apiContext": "buy",
				"apiName":    "browse",
				"apiVersion": "v1",
				"resources": []map[string]any{{
					"name": "buy.browse",
					"rates": []map[string]any{{
						"count":      0,
						"limit":      5000,
						"remaining":  5000,
						"reset":      reset.Format(time.RFC3339),
						"timeWindow": 86400,
					}},
				}},
			}},
		})
	}
}
