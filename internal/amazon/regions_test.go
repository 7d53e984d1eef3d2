package amazon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
)

func TestRegionForDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain  string
		want    amazon.Region
		wantErr bool
	}{
		{domain: "com", want: amazon.RegionNorthAmerica},
		{domain: "ca", want: amazon.RegionNorthAmerica},
		{domain: "com.mx", want: amazon.RegionNorthAmerica},
		{domain: "de", want: amazon.RegionEurope},
		{domain: "co.uk", want: amazon.RegionEurope},
		{domain: "in", want: amazon.RegionEurope},
		{domain: "co.jp", want: amazon.RegionFarEast},
		{domain: "com.au", want: amazon.RegionFarEast},
		{domain: "xx", wantErr: true},
		{domain: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("domain "+tt.domain, func(t *testing.T) {
			t.Parallel()

			region, err := amazon.RegionForDomain(tt.domain)

			if tt.wantErr {
				require.ErrorIs(t, err, amazon.ErrUnknownMarketplace)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, region)
		})
	}
}

func TestEndpointForDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		want   string
	}{
		{"com", "https://sellingpartnerapi-na.amazon.com"},
		{"de", "https://sellingpartnerapi-eu.amazon.com"},
		{"co.jp", "https://sellingpartnerapi-fe.amazon.com"},
	}

	for _, tt := range tests {
		endpoint, err := amazon.EndpointForDomain(tt.domain)
		require.NoError(t, err)
		assert.Equal(t, tt.want, endpoint)
	}

	_, err := amazon.EndpointForDomain("nope")
	assert.ErrorIs(t, err, amazon.ErrUnknownMarketplace)
}

func TestMarketplaceIDForDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		want   string
	}{
		{"com", "ATVPDKIKX0DER"},
		{"de", "A1PA6795UKMFR9"},
		{"co.uk", "A1F83G8C2ARO7P"},
		{"com.au", "A39IBJ37TRP1C6"},
	}

	for _, tt := range tests {
		id, err := amazon.MarketplaceIDForDomain(tt.domain)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
	}

	_, err := amazon.MarketplaceIDForDomain("nope")
	assert.ErrorIs(t, err, amazon.ErrUnknownMarketplace)
}

// Every domain in the tables must have a marketplace ID, and vice versa.
func TestRegionTablesConsistent(t *testing.T) {
	t.Parallel()

	for region, countries := range amazon.Domains {
		ids, ok := amazon.MarketplaceIDs[region]
		require.True(t, ok, "region %s missing from MarketplaceIDs", region)
		assert.Len(t, ids, len(countries), "region %s", region)

		for country := range countries {
			assert.Contains(t, ids, country, "region %s", region)
		}

		_, ok = amazon.Endpoints[region]
		assert.True(t, ok, "region %s missing from Endpoints", region)
	}
}
