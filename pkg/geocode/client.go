package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
)

const (
	defaultBaseURL         = "https://nominatim.openstreetmap.org"
	responseBodyReadLimit  = 1 << 20
	defaultRequestTimeout  = 10 * time.Second
	defaultClientUserAgent = "casamaria-storefront/1.0"
)

// Client wraps the Nominatim reverse-geocoding API used to prefill the
// delivery address from captured coordinates.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Nominatim base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithUserAgent sets the User-Agent header Nominatim requires.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(agent)
		if trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// NewClient builds the reverse-geocoding client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultClientUserAgent,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road          string `json:"road"`
		Pedestrian    string `json:"pedestrian"`
		Suburb        string `json:"suburb"`
		HouseNumber   string `json:"house_number"`
		Neighbourhood string `json:"neighbourhood"`
		Residential   string `json:"residential"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
	} `json:"address"`
}

// Reverse resolves coordinates into a courier-friendly address string.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range")
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	endpoint := c.baseURL + "/reverse?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build reverse geocode request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse geocode call failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read reverse geocode response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("reverse geocode status %d", resp.StatusCode))
	}

	var payload reverseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode reverse geocode response")
	}

	return buildAddress(payload), nil
}

// buildAddress assembles "street number, neighbourhood, city", falling back
// to the raw display name when the parts are empty.
func buildAddress(payload reverseResponse) string {
	addr := payload.Address

	street := firstNonEmpty(addr.Road, addr.Pedestrian, addr.Suburb)
	neighbourhood := firstNonEmpty(addr.Neighbourhood, addr.Residential)
	city := firstNonEmpty(addr.City, addr.Town, addr.Village)

	var b strings.Builder
	b.WriteString(street)
	if addr.HouseNumber != "" {
		if street != "" {
			b.WriteString(" ")
		}
		b.WriteString(addr.HouseNumber)
	}
	if street != "" && (neighbourhood != "" || city != "") {
		b.WriteString(",")
	}
	if neighbourhood != "" {
		b.WriteString(" ")
		b.WriteString(neighbourhood)
		if city != "" {
			b.WriteString(",")
		}
	}
	if city != "" {
		b.WriteString(" ")
		b.WriteString(city)
	}

	full := strings.TrimSpace(b.String())
	if full == "" {
		return payload.DisplayName
	}
	return full
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
