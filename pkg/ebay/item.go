package ebay

import (
	"context"
	"net/url"
	"strings"
)

const itemPath = "/buy/browse/v1/item/"

// ItemService exposes the Browse API item resource.
type ItemService struct {
	client *Client
}

// NewItemService creates an ItemService backed by c.
func NewItemService(c *Client) *ItemService {
	return &ItemService{client: c}
}

// GetItem fetches an item by its RESTful id, e.g. "v1|110123456789|0".
// The id is sent verbatim apart from percent-encoding.
func (s *ItemService) GetItem(ctx context.Context, id string) (*Item, error) {
	return Request[Item](ctx, s.client, itemPath+escapeSegment(id))
}

// GetItemByLegacyID fetches an item by its legacy (Trading API) item id.
//
// The query travels as an escaped path segment, producing
// .../get_item_by_legacy_id/%3Flegacy_item_id%3D<id>. Existing consumers
// depend on that exact URL.
func (s *ItemService) GetItemByLegacyID(ctx context.Context, legacyID string) (*Item, error) {
	return Request[Item](
		ctx,
		s.client,
		itemPath+"get_item_by_legacy_id/"+escapeSegment("?legacy_item_id="+legacyID),
	)
}

// GetItemsByItemGroup fetches every variation in an item group. Uses the
// same escaped-query segment as GetItemByLegacyID.
func (s *ItemService) GetItemsByItemGroup(ctx context.Context, groupID string) (*ItemGroup, error) {
	return Request[ItemGroup](
		ctx,
		s.client,
		itemPath+"get_items_by_item_group/"+escapeSegment("?item_group_id="+groupID),
	)
}

// FormatItemID builds a RESTful item id from a legacy id and an optional
// variation id: "v1|<legacyID>|<variationID or 0>".
func FormatItemID(legacyID, variationID string) string {
	if variationID == "" {
		variationID = "0"
	}
	return "v1|" + legacyID + "|" + variationID
}

// escapeSegment percent-encodes everything except RFC 3986 unreserved
// characters. Spaces become %20, not '+'.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
