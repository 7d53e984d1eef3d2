package amazon

import (
	"errors"
	"fmt"
)

// Region names a Selling Partner API region.
type Region string

// Supported regions.
const (
	RegionNorthAmerica Region = "North America"
	RegionEurope       Region = "Europe"
	RegionFarEast      Region = "Far East"
)

// ErrUnknownMarketplace is returned when a marketplace domain suffix is not
// present in the region tables. Callers should treat it as a configuration
// or client-input error, not a transient failure.
var ErrUnknownMarketplace = errors.New("unknown marketplace domain")

// Endpoints maps each region to its SP-API endpoint base URL.
var Endpoints = map[Region]string{
	RegionNorthAmerica: "https://sellingpartnerapi-na.amazon.com",
	RegionEurope:       "https://sellingpartnerapi-eu.amazon.com",
	RegionFarEast:      "https://sellingpartnerapi-fe.amazon.com",
}

// Domains maps each region to its country-level marketplace domain suffixes.
var Domains = map[Region]map[string]string{
	RegionNorthAmerica: {
		"Canada":        "ca",
		"United States": "com",
		"Mexico":        "com.mx",
	},
	RegionEurope: {
		"Ireland":              "ie",
		"Spain":                "es",
		"United Kingdom":       "co.uk",
		"France":               "fr",
		"Belgium":              "com.be",
		"Netherlands":          "nl",
		"Germany":              "de",
		"Italy":                "it",
		"Sweden":               "se",
		"South Africa":         "co.za",
		"Poland":               "pl",
		"Egypt":                "eg",
		"Turkey":               "com.tr",
		"Saudi Arabia":         "sa",
		"United Arab Emirates": "ae",
		"India":                "in",
	},
	RegionFarEast: {
		"Singapore": "sg",
		"Japan":     "co.jp",
		"Australia": "com.au",
	},
}

// MarketplaceIDs maps each region to its country-level marketplace
// identifiers.
var MarketplaceIDs = map[Region]map[string]string{
	RegionNorthAmerica: {
		"Canada":        "A2EUQ1WTGCTBG2",
		"United States": "ATVPDKIKX0DER",
		"Mexico":        "A1AM78C64UM0Y8",
	},
	RegionEurope: {
		"Ireland":              "A1T7Y8C2ARO7P",
		"Spain":                "A1RKKUPIHCS9HS",
		"United Kingdom":       "A1F83G8C2ARO7P",
		"France":               "A13V1IB3VIYZZH",
		"Belgium":              "A2Q3Y263D00KWC",
		"Netherlands":          "A1805IZSGTT6HS",
		"Germany":              "A1PA6795UKMFR9",
		"Italy":                "APJ6JRA9NG5V4",
		"Sweden":               "A2NODRKZP88ZB9",
		"South Africa":         "A3P5ROKL5A1OLE",
		"Poland":               "A1C3SOZRARQ6R3",
		"Egypt":                "A1RKKUPIHCS9HS",
		"Turkey":               "A33AVAJ2PDY3EV",
		"Saudi Arabia":         "A17E79C6D8DWNP",
		"United Arab Emirates": "A2VIGQ35RCS4UG",
		"India":                "A21TJRUUN4KGV",
	},
	RegionFarEast: {
		"Singapore": "A19VAU5U5O7RUS",
		"Japan":     "A1VC38T7YXB528",
		"Australia": "A39IBJ37TRP1C6",
	},
}

// RegionForDomain resolves a marketplace domain suffix (e.g. "de", "co.uk")
// to its region. Returns ErrUnknownMarketplace for domains not in the tables.
func RegionForDomain(domain string) (Region, error) {
	for region, countries := range Domains {
		for _, d := range countries {
			if d == domain {
				return region, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMarketplace, domain)
}

// EndpointForDomain resolves a marketplace domain suffix to its SP-API
// endpoint base URL.
func EndpointForDomain(domain string) (string, error) {
	region, err := RegionForDomain(domain)
	if err != nil {
		return "", err
	}
	return Endpoints[region], nil
}

// MarketplaceIDForDomain resolves a marketplace domain suffix to its
// marketplace identifier.
func MarketplaceIDForDomain(domain string) (string, error) {
	region, err := RegionForDomain(domain)
	if err != nil {
		return "", err
	}
	for country, d := range Domains[region] {
		if d == domain {
			return MarketplaceIDs[region][country], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMarketplace, domain)
}
