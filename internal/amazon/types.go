package amazon

// Money is a currency amount as returned by the pricing and fees APIs.
type Money struct {
	CurrencyCode string  `json:"CurrencyCode"`
	Amount       float64 `json:"Amount"`
}

// CatalogSearchResponse is the subset of the Catalog Items search response
// this service consumes.
type CatalogSearchResponse struct {
	NumberOfResults int           `json:"numberOfResults"`
	Pagination      *Pagination   `json:"pagination,omitempty"`
	Refinements     *Refinements  `json:"refinements,omitempty"`
	Items           []CatalogItem `json:"items"`
}

// Pagination carries the opaque page tokens for catalog search results.
type Pagination struct {
	NextToken     string `json:"nextToken,omitempty"`
	PreviousToken string `json:"previousToken,omitempty"`
}

// Refinements holds brand and category facets for a search result.
type Refinements struct {
	Brands     []BrandRefinement    `json:"brands,omitempty"`
	Categories []CategoryRefinement `json:"categories,omitempty"`
}

// BrandRefinement is a brand facet.
type BrandRefinement struct {
	NumberOfResults int    `json:"numberOfResults"`
	BrandName       string `json:"brandName"`
}

// CategoryRefinement is a category facet.
type CategoryRefinement struct {
	NumberOfResults  int    `json:"numberOfResults"`
	DisplayName      string `json:"displayName"`
	ClassificationID string `json:"classificationId"`
}

// CatalogItem is the subset of a catalog item this service consumes.
type CatalogItem struct {
	ASIN         string            `json:"asin"`
	Identifiers  []ItemIdentifiers `json:"identifiers,omitempty"`
	Images       []ItemImages      `json:"images,omitempty"`
	ProductTypes []ItemProductType `json:"productTypes,omitempty"`
	SalesRanks   []ItemSalesRanks  `json:"salesRanks,omitempty"`
	Summaries    []ItemSummary     `json:"summaries,omitempty"`
}

// ItemIdentifiers groups external identifiers by marketplace.
type ItemIdentifiers struct {
	MarketplaceID string           `json:"marketplaceId"`
	Identifiers   []ItemIdentifier `json:"identifiers"`
}

// ItemIdentifier is a single external identifier (EAN, UPC, ...).
type ItemIdentifier struct {
	IdentifierType string `json:"identifierType"`
	Identifier     string `json:"identifier"`
}

// ItemImages groups images by marketplace.
type ItemImages struct {
	MarketplaceID string      `json:"marketplaceId"`
	Images        []ItemImage `json:"images"`
}

// ItemImage is a single catalog image variant.
type ItemImage struct {
	Variant string `json:"variant"`
	Link    string `json:"link"`
	Height  int    `json:"height"`
	Width   int    `json:"width"`
}

// ItemProductType is the product type for a marketplace.
type ItemProductType struct {
	MarketplaceID string `json:"marketplaceId"`
	ProductType   string `json:"productType"`
}

// ItemSalesRanks groups sales ranks by marketplace.
type ItemSalesRanks struct {
	MarketplaceID       string               `json:"marketplaceId"`
	ClassificationRanks []ClassificationRank `json:"classificationRanks,omitempty"`
	DisplayGroupRanks   []DisplayGroupRank   `json:"displayGroupRanks,omitempty"`
}

// ClassificationRank is a rank within a browse classification.
type ClassificationRank struct {
	ClassificationID string `json:"classificationId"`
	Title            string `json:"title"`
	Link             string `json:"link"`
	Rank             int    `json:"rank"`
}

// DisplayGroupRank is a rank within a website display group.
type DisplayGroupRank struct {
	WebsiteDisplayGroup string `json:"websiteDisplayGroup"`
	Title               string `json:"title"`
	Link                string `json:"link"`
	Rank                int    `json:"rank"`
}

// ItemSummary is the per-marketplace summary of a catalog item.
type ItemSummary struct {
	MarketplaceID        string          `json:"marketplaceId"`
	ItemName             string          `json:"itemName,omitempty"`
	Brand                string          `json:"brand,omitempty"`
	ReleaseDate          string          `json:"releaseDate,omitempty"`
	BrowseClassification *Classification `json:"browseClassification,omitempty"`
}

// Classification identifies a browse node.
type Classification struct {
	DisplayName      string `json:"displayName"`
	ClassificationID string `json:"classificationId"`
}

// ItemOffersResponse is the Product Pricing getItemOffers response subset.
type ItemOffersResponse struct {
	Payload OffersPayload `json:"payload"`
}

// OffersPayload is the body of an item offers response.
type OffersPayload struct {
	ASIN          string        `json:"ASIN"`
	Status        string        `json:"status"`
	ItemCondition string        `json:"ItemCondition"`
	Summary       OffersSummary `json:"Summary"`
	Offers        []Offer       `json:"Offers"`
	MarketplaceID string        `json:"marketplaceId"`
}

// OffersSummary aggregates offer statistics for an item.
type OffersSummary struct {
	LowestPrices         []PriceBreakdown `json:"LowestPrices,omitempty"`
	BuyBoxPrices         []PriceBreakdown `json:"BuyBoxPrices,omitempty"`
	NumberOfOffers       []OfferCount     `json:"NumberOfOffers,omitempty"`
	BuyBoxEligibleOffers []OfferCount     `json:"BuyBoxEligibleOffers,omitempty"`
	SalesRankings        []SalesRanking   `json:"SalesRankings,omitempty"`
	TotalOfferCount      int              `json:"TotalOfferCount"`
}

// PriceBreakdown is a priced offer summary entry.
type PriceBreakdown struct {
	Condition          string `json:"condition"`
	FulfillmentChannel string `json:"fulfillmentChannel,omitempty"`
	LandedPrice        Money  `json:"LandedPrice"`
	ListingPrice       Money  `json:"ListingPrice"`
	Shipping           Money  `json:"Shipping"`
}

// OfferCount counts offers by condition and fulfillment channel.
type OfferCount struct {
	Condition          string `json:"condition"`
	FulfillmentChannel string `json:"fulfillmentChannel,omitempty"`
	OfferCount         int    `json:"OfferCount"`
}

// SalesRanking is a category sales rank.
type SalesRanking struct {
	ProductCategoryID string `json:"ProductCategoryId"`
	Rank              int    `json:"Rank"`
}

// Offer is a single marketplace offer for an item.
type Offer struct {
	SellerID             string         `json:"SellerId"`
	SubCondition         string         `json:"SubCondition"`
	ListingPrice         Money          `json:"ListingPrice"`
	Shipping             Money          `json:"Shipping"`
	SellerFeedbackRating FeedbackRating `json:"SellerFeedbackRating"`
	PrimeInformation     PrimeInfo      `json:"PrimeInformation"`
	IsFeaturedMerchant   bool           `json:"IsFeaturedMerchant"`
	IsBuyBoxWinner       bool           `json:"IsBuyBoxWinner"`
	IsFulfilledByAmazon  bool           `json:"IsFulfilledByAmazon"`
}

// FeedbackRating is a seller's feedback summary.
type FeedbackRating struct {
	FeedbackCount                int     `json:"FeedbackCount"`
	SellerPositiveFeedbackRating float64 `json:"SellerPositiveFeedbackRating"`
}

// PrimeInfo flags Prime eligibility of an offer.
type PrimeInfo struct {
	IsPrime         bool `json:"IsPrime"`
	IsNationalPrime bool `json:"IsNationalPrime"`
}

// FeesEstimateResponse is the Product Fees getMyFeesEstimateForASIN
// response subset.
type FeesEstimateResponse struct {
	FeesEstimateResult FeesEstimateResult `json:"FeesEstimateResult"`
}

// FeesEstimateResult carries the status and estimate for a fees request.
type FeesEstimateResult struct {
	Status                 string                 `json:"Status"`
	FeesEstimateIdentifier FeesEstimateIdentifier `json:"FeesEstimateIdentifier"`
	FeesEstimate           FeesEstimate           `json:"FeesEstimate"`
}

// FeesEstimateIdentifier echoes the request that produced an estimate.
type FeesEstimateIdentifier struct {
	MarketplaceID       string              `json:"MarketplaceId"`
	SellerID            string              `json:"SellerId,omitempty"`
	IDType              string              `json:"IdType"`
	IDValue             string              `json:"IdValue"`
	IsAmazonFulfilled   bool                `json:"IsAmazonFulfilled"`
	PriceToEstimateFees PriceToEstimateFees `json:"PriceToEstimateFees"`
}

// PriceToEstimateFees is the hypothetical price a fees estimate is based on.
type PriceToEstimateFees struct {
	ListingPrice Money `json:"ListingPrice"`
	Shipping     Money `json:"Shipping"`
}

// FeesEstimate is the total and itemized fee estimate.
type FeesEstimate struct {
	TotalFeesEstimate Money       `json:"TotalFeesEstimate"`
	FeeDetailList     []FeeDetail `json:"FeeDetailList"`
}

// FeeDetail is a single fee line item.
type FeeDetail struct {
	FeeType      string `json:"FeeType"`
	FeeAmount    Money  `json:"FeeAmount"`
	FeePromotion *Money `json:"FeePromotion,omitempty"`
	TaxAmount    *Money `json:"TaxAmount,omitempty"`
	FinalFee     Money  `json:"FinalFee"`
}
