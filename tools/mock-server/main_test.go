package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

func loadTestFixture(t *testing.T) []indexedItem {
	t.Helper()
	items, err := loadFixture(filepath.Join("testdata", "items.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return items
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newMux(testLogger(), loadTestFixture(t)))
	t.Cleanup(srv.Close)
	return srv
}

func authedGet(t *testing.T, rawURL string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer test")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("executing request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoadFixture(t *testing.T) {
	items := loadTestFixture(t)
	if len(items) == 0 {
		t.Fatal("expected items in fixture")
	}
	groups := 0
	for _, it := range items {
		if it.itemID == "" || it.legacyID == "" {
			t.Errorf("fixture item missing ids: %+v", it)
		}
		if it.variation {
			groups++
		}
	}
	if groups < 2 {
		t.Errorf("variations=%d, want at least 2", groups)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	req.SetBasicAuth("app-id", "cert-id")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["token_type"] != "Application Access Token" {
		t.Errorf("token_type=%v, want Application Access Token", resp["token_type"])
	}
	if resp["expires_in"] != float64(7200) {
		t.Errorf("expires_in=%v, want 7200", resp["expires_in"])
	}
}

func TestTokenHandler_MissingAuth(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_client" {
		t.Errorf("error=%s, want invalid_client", resp["error"])
	}
}

func TestItemHandler_MissingBearer(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/buy/browse/v1/item/v1%7C110550727543%7C0")
	if err != nil {
		t.Fatalf("executing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status=%d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestLegacyHandler_QueryForms(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"escaped in path", "/buy/browse/v1/item/get_item_by_legacy_id/%3Flegacy_item_id%3D110550727543", http.StatusOK},
		{"plain query", "/buy/browse/v1/item/get_item_by_legacy_id?legacy_item_id=110550727543", http.StatusOK},
		{"unknown", "/buy/browse/v1/item/get_item_by_legacy_id/%3Flegacy_item_id%3D999", http.StatusNotFound},
		{"variation listing", "/buy/browse/v1/item/get_item_by_legacy_id/%3Flegacy_item_id%3D351825690866", http.StatusBadRequest},
		{"missing id", "/buy/browse/v1/item/get_item_by_legacy_id", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := authedGet(t, srv.URL+tt.path)
			if resp.StatusCode != tt.want {
				t.Errorf("status=%d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestGroupHandler_QueryForms(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/buy/browse/v1/item/get_items_by_item_group/%3Fitem_group_id%3D351825690866",
		"/buy/browse/v1/item/get_items_by_item_group?item_group_id=351825690866",
	} {
		resp := authedGet(t, srv.URL+path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status=%d, want %d", path, resp.StatusCode, http.StatusOK)
		}
		var body struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(body.Items) != 2 {
			t.Errorf("%s: items=%d, want 2", path, len(body.Items))
		}
	}
}

func TestSearchHandler_AllItems(t *testing.T) {
	items := loadTestFixture(t)
	handler := searchHandler(testLogger(), items)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != len(items) {
		t.Errorf("total=%d, want %d", resp.Total, len(items))
	}
	if len(resp.ItemSummaries) != len(items) {
		t.Errorf("items=%d, want %d", len(resp.ItemSummaries), len(items))
	}
}

func TestSearchHandler_MultiWordQuery(t *testing.T) {
	handler := searchHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?q=32GB+DDR4+ECC", http.NoBody)
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total=%d, want 1", resp.Total)
	}
}

func TestSearchHandler_Pagination(t *testing.T) {
	items := loadTestFixture(t)
	handler := searchHandler(testLogger(), items)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?limit=2&offset=0", http.NoBody)
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.ItemSummaries) != 2 {
		t.Errorf("items=%d, want 2", len(resp.ItemSummaries))
	}
	if resp.Next == "" {
		t.Error("expected non-empty next for paginated response")
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	handler := searchHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?q=nonexistent_xyz_product", http.NoBody)
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("total=%d, want 0", resp.Total)
	}
	if resp.ItemSummaries == nil {
		t.Error("expected empty array, got nil")
	}
}

// TestSDKAgainstMockServer drives the real client, including the
// client-credentials token exchange, through the mock endpoints.
func TestSDKAgainstMockServer(t *testing.T) {
	srv := newTestServer(t)
	urls := ebay.CustomURLService(srv.URL)

	auth := ebay.NewOAuthAuthenticator(ebay.Production, "app-id", "cert-id",
		ebay.WithTokenURL(urls.TokenURL()))
	client := ebay.NewClient(auth, ebay.WithURLService(urls))
	items := ebay.NewItemService(client)
	ctx := context.Background()

	item, err := items.GetItem(ctx, "v1|110550727543|0")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item.LegacyItemID != "110550727543" {
		t.Errorf("legacyItemId=%s, want 110550727543", item.LegacyItemID)
	}

	legacy, err := items.GetItemByLegacyID(ctx, "204712345678")
	if err != nil {
		t.Fatalf("GetItemByLegacyID: %v", err)
	}
	if legacy.ItemID != "v1|204712345678|0" {
		t.Errorf("itemId=%s, want v1|204712345678|0", legacy.ItemID)
	}

	group, err := items.GetItemsByItemGroup(ctx, "351825690866")
	if err != nil {
		t.Fatalf("GetItemsByItemGroup: %v", err)
	}
	if len(group.Items) != 2 {
		t.Errorf("group items=%d, want 2", len(group.Items))
	}

	_, err = items.GetItem(ctx, "v1|1|0")
	var apiErr *ebay.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *ebay.Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || !ebay.IsNotFound(err) {
		t.Errorf("status=%d, want 404", apiErr.StatusCode)
	}

	quota, err := ebay.NewAnalyticsService(client).GetBrowseQuota(ctx)
	if err != nil {
		t.Fatalf("GetBrowseQuota: %v", err)
	}
	if quota.Limit != 5000 {
		t.Errorf("limit=%d, want 5000", quota.Limit)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
