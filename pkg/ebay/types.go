package ebay

// Item is the Browse API representation of a single listing, as returned
// by getItem and getItemByLegacyId.
type Item struct {
	ItemID           string            `json:"itemId"`
	LegacyItemID     string            `json:"legacyItemId,omitempty"`
	Title            string            `json:"title"`
	Subtitle         string            `json:"subtitle,omitempty"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	Description      string            `json:"description,omitempty"`
	Price            Price             `json:"price"`
	MarketingPrice   *MarketingPrice   `json:"marketingPrice,omitempty"`
	CategoryID       string            `json:"categoryId,omitempty"`
	CategoryPath     string            `json:"categoryPath,omitempty"`
	Condition        string            `json:"condition,omitempty"`
	ConditionID      string            `json:"conditionId,omitempty"`
	ItemWebURL       string            `json:"itemWebUrl"`
	Image            *Image            `json:"image,omitempty"`
	AdditionalImages []Image           `json:"additionalImages,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	Color            string            `json:"color,omitempty"`
	Size             string            `json:"size,omitempty"`
	Seller           *Seller           `json:"seller,omitempty"`
	ItemLocation     *ItemLocation     `json:"itemLocation,omitempty"`
	BuyingOptions    []string          `json:"buyingOptions,omitempty"`
	ShippingOptions  []ShippingOption  `json:"shippingOptions,omitempty"`
	LocalizedAspects []LocalizedAspect `json:"localizedAspects,omitempty"`
	PrimaryItemGroup *ItemGroupSummary `json:"primaryItemGroup,omitempty"`
	ItemCreationDate string            `json:"itemCreationDate,omitempty"`
	ItemEndDate      string            `json:"itemEndDate,omitempty"`

	EstimatedAvailabilities  []Availability `json:"estimatedAvailabilities,omitempty"`
	TopRatedBuyingExperience bool           `json:"topRatedBuyingExperience"`
	EnabledForGuestCheckout  bool           `json:"enabledForGuestCheckout"`
	AdultOnly                bool           `json:"adultOnly"`
}

// ItemGroup is the response of getItemsByItemGroup.
type ItemGroup struct {
	Items              []Item              `json:"items"`
	CommonDescriptions []CommonDescription `json:"commonDescriptions,omitempty"`
	Warnings           []ErrorDetail       `json:"warnings,omitempty"`
}

// CommonDescription is a description shared by several items of a group.
type CommonDescription struct {
	Description string   `json:"description"`
	ItemIDs     []string `json:"itemIds"`
}

// ItemGroupSummary identifies the group an item variation belongs to.
type ItemGroupSummary struct {
	ItemGroupID    string `json:"itemGroupId"`
	ItemGroupType  string `json:"itemGroupType,omitempty"`
	ItemGroupHref  string `json:"itemGroupHref,omitempty"`
	ItemGroupTitle string `json:"itemGroupTitle,omitempty"`
}

// ItemSummary is a single item from the item_summary/search response.
type ItemSummary struct {
	ItemID          string           `json:"itemId"`
	LegacyItemID    string           `json:"legacyItemId,omitempty"`
	Title           string           `json:"title"`
	Price           Price            `json:"price"`
	ItemWebURL      string           `json:"itemWebUrl"`
	ItemHref        string           `json:"itemHref,omitempty"`
	Image           *Image           `json:"image,omitempty"`
	Seller          *Seller          `json:"seller,omitempty"`
	Condition       string           `json:"condition"`
	ConditionID     string           `json:"conditionId"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ShippingOptions []ShippingOption `json:"shippingOptions,omitempty"`
	ItemEndDate     string           `json:"itemEndDate,omitempty"`
	Categories      []Category       `json:"categories,omitempty"`
	ItemGroupHref   string           `json:"itemGroupHref,omitempty"`
	ItemGroupType   string           `json:"itemGroupType,omitempty"`

	TopRatedBuyingExperience bool `json:"topRatedBuyingExperience"`
}

// Price holds eBay price information. Value is a decimal string.
type Price struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// MarketingPrice describes a discount against an original price.
type MarketingPrice struct {
	OriginalPrice      *Price `json:"originalPrice,omitempty"`
	DiscountPercentage string `json:"discountPercentage,omitempty"`
	DiscountAmount     *Price `json:"discountAmount,omitempty"`
}

// Image holds eBay image information.
type Image struct {
	ImageURL string `json:"imageUrl"`
	Height   int    `json:"height,omitempty"`
	Width    int    `json:"width,omitempty"`
}

// Seller holds eBay seller information.
type Seller struct {
	Username           string `json:"username"`
	FeedbackScore      int    `json:"feedbackScore"`
	FeedbackPercentage string `json:"feedbackPercentage"`
	SellerAccountType  string `json:"sellerAccountType,omitempty"`
}

// ItemLocation is where the item ships from.
type ItemLocation struct {
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Country         string `json:"country"`
}

// ShippingOption holds eBay shipping information.
type ShippingOption struct {
	ShippingCostType string `json:"shippingCostType,omitempty"`
	ShippingCost     *Price `json:"shippingCost,omitempty"`
	Type             string `json:"type,omitempty"`
	MinEstimatedDate string `json:"minEstimatedDeliveryDate,omitempty"`
	MaxEstimatedDate string `json:"maxEstimatedDeliveryDate,omitempty"`
}

// Availability is the estimated quantity available for purchase.
type Availability struct {
	AvailabilityStatus string `json:"estimatedAvailabilityStatus,omitempty"`
	AvailableQuantity  int    `json:"estimatedAvailableQuantity,omitempty"`
	SoldQuantity       int    `json:"estimatedSoldQuantity,omitempty"`
}

// LocalizedAspect is a name/value item specific, e.g. Brand: Dell.
type LocalizedAspect struct {
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Category holds eBay category information.
type Category struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
}
