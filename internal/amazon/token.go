package amazon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mfigueredo/amazon-sp-proxy/internal/metrics"
)

const (
	defaultTokenURL        = "https://api.amazon.com/auth/o2/token" //nolint:gosec // not a credential
	defaultExchangeTimeout = 10 * time.Second
)

// Token is the result of an OAuth token exchange.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// RegionTokens holds the per-region default refresh tokens used when a user
// has no refresh token of their own. North American marketplaces use the
// US-East token; all other regions use the EU-West token.
type RegionTokens struct {
	USEast string
	EUWest string
}

// ExchangeClient implements TokenExchanger against Amazon's OAuth endpoint.
// Each call is a single attempt with a fixed timeout; retry policy belongs
// to the caller.
type ExchangeClient struct {
	clientID     string
	clientSecret string
	defaults     RegionTokens
	tokenURL     string
	client       *http.Client
}

// ExchangeOption configures the ExchangeClient.
type ExchangeOption func(*ExchangeClient)

// WithTokenURL overrides the default Amazon token endpoint.
func WithTokenURL(u string) ExchangeOption {
	return func(c *ExchangeClient) {
		c.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ExchangeOption {
	return func(c *ExchangeClient) {
		c.client = hc
	}
}

// NewExchangeClient creates a token exchange client for the given LWA
// application credentials and region default refresh tokens.
func NewExchangeClient(
	clientID, clientSecret string,
	defaults RegionTokens,
	opts ...ExchangeOption,
) *ExchangeClient {
	c := &ExchangeClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		defaults:     defaults,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: defaultExchangeTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades a refresh token for a short-lived access token. When
// refreshToken is empty, the region default derived from domain is used
// instead.
func (c *ExchangeClient) Exchange(
	ctx context.Context,
	domain, refreshToken string,
) (*Token, error) {
	if refreshToken == "" {
		var err error
		refreshToken, err = c.defaultRefreshToken(domain)
		if err != nil {
			return nil, err
		}
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		return nil, fmt.Errorf(
			"token exchange failed (status %d): %s - %s",
			resp.StatusCode,
			errResp.Error,
			errResp.ErrorDescription,
		)
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	metrics.TokenExchangesTotal.WithLabelValues("ok").Inc()
	return &token, nil
}

// defaultRefreshToken picks the region-level refresh token for a domain.
// Only North America has its own grant; every other region shares the
// EU-West one.
func (c *ExchangeClient) defaultRefreshToken(domain string) (string, error) {
	region, err := RegionForDomain(domain)
	if err != nil {
		return "", err
	}
	if region == RegionNorthAmerica {
		return c.defaults.USEast, nil
	}
	return c.defaults.EUWest, nil
}
