// Package geocode is a thin client for a Nominatim-style reverse
// geocoding endpoint. The booking flow only needs a human-readable
// address for the doorstep pickup form, so the client consumes a small
// subset of the response and tolerates any component being absent.
//
// Lookups are cached in Redis: device coordinates barely move between
// form edits and the upstream endpoint is rate limited.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

// Address is the subset of the reverse-geocode response the booking
// flow consumes. Any field may be empty.
type Address struct {
	Locality string `json:"locality"` // village / suburb / town
	City     string `json:"city"`     // city / county
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// Display joins the non-empty components into a single address line.
func (a Address) Display() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Locality, a.City, a.State, a.Country, a.Postcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Client performs reverse-geocode lookups with a Redis cache in front.
// A nil Redis client disables caching.
type Client struct {
	httpc    *http.Client
	baseURL  string
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient builds a geocode client from config. redisClient may be nil.
func NewClient(cfg config.GeocodeConfig, redisClient *redis.Client) *Client {
	return &Client{
		httpc:    &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		redis:    redisClient,
		cacheTTL: cfg.CacheTTL,
	}
}

const cacheKeyPrefix = "geocode:reverse:"

// cacheKey buckets coordinates to ~11 m so nearby lookups share an entry.
func cacheKey(loc model.Location) string {
	return fmt.Sprintf("%s%.4f:%.4f", cacheKeyPrefix, loc.Lat, loc.Lon)
}

// Reverse resolves coordinates to an Address.
//
// Strategy:
//  1. Try the Redis cache (fast path).
//  2. On miss, call the upstream endpoint, then cache the result.
//
// Single-shot, no retry: a failure surfaces to the caller, who shows a
// notice and lets the user type the address by hand.
func (c *Client) Reverse(ctx context.Context, loc model.Location) (Address, error) {
	key := cacheKey(loc)

	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, key).Bytes(); err == nil {
			var addr Address
			if err := json.Unmarshal(cached, &addr); err == nil {
				return addr, nil
			}
		}
	}

	addr, err := c.lookup(ctx, loc)
	if err != nil {
		return Address{}, err
	}

	if c.redis != nil {
		// Fire-and-forget; a cache write failure is not a lookup failure.
		if buf, err := json.Marshal(addr); err == nil {
			if err := c.redis.Set(ctx, key, buf, c.cacheTTL).Err(); err != nil {
				log.Printf("[geocode] cache write failed: %v", err)
			}
		}
	}

	return addr, nil
}

// nominatimResponse mirrors the upstream payload shape. Only the
// address block is consumed.
type nominatimResponse struct {
	Address struct {
		Village  string `json:"village"`
		Suburb   string `json:"suburb"`
		Town     string `json:"town"`
		City     string `json:"city"`
		County   string `json:"county"`
		State    string `json:"state"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

func (c *Client) lookup(ctx context.Context, loc model.Location) (Address, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", loc.Lat))
	q.Set("lon", fmt.Sprintf("%f", loc.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("geocode: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("geocode: upstream returned %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	return fromNominatim(body), nil
}

// fromNominatim picks the first present component at each level:
// village > suburb > town for the locality, city > county for the city.
func fromNominatim(body nominatimResponse) Address {
	addr := Address{
		State:    body.Address.State,
		Country:  body.Address.Country,
		Postcode: body.Address.Postcode,
	}
	switch {
	case body.Address.Village != "":
		addr.Locality = body.Address.Village
	case body.Address.Suburb != "":
		addr.Locality = body.Address.Suburb
	default:
		addr.Locality = body.Address.Town
	}
	if body.Address.City != "" {
		addr.City = body.Address.City
	} else {
		addr.City = body.Address.County
	}
	return addr
}
