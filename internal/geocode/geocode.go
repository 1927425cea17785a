// Package geocode builds the location registry: it resolves curated
// location names through the Google Geocoding and Place Details APIs
// and emits registry rows. The cleaning pipeline never calls this; it
// only reads the resulting table.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mario-agban/CarpeMed/internal"
	"github.com/mario-agban/CarpeMed/internal/config"
	"github.com/mario-agban/CarpeMed/internal/registry"
	"github.com/mario-agban/CarpeMed/internal/util"
)

const (
	geocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	detailsURL = "https://maps.googleapis.com/maps/api/place/details/json"
)

var rePhoneNoise = regexp.MustCompile(`\+|\s`)

// Client talks to the Google geocoding endpoints.
type Client struct {
	cfg        config.Config
	schema     *config.Schema
	httpClient *http.Client
	limiter    *util.RateLimiter
}

func NewClient(cfg config.Config, schema *config.Schema) (*Client, error) {
	if err := cfg.Require("GOOGLE_API_KEY", cfg.GoogleAPIKey); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		schema:     schema,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		limiter:    util.NewRateLimiter(cfg.GeocodeRateRPS),
	}, nil
}

// Entry is one enriched registry row plus the aggregation-only
// attributes that never reach the cleaning join.
type Entry struct {
	internal.Location
	LocationID       string  `json:"locationID"`
	Website          *string `json:"website"`
	ProviderCategory string  `json:"providerCategory"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

type detailsResponse struct {
	Result struct {
		InternationalPhoneNumber string `json:"international_phone_number"`
		Website                  string `json:"website"`
		OpeningHours             struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
	} `json:"result"`
}

// Lookup resolves one curated location name. Zero geocoder results are
// not an error: the entry comes back with only its name and category,
// matching how sparse rows have always been kept in the registry.
func (c *Client) Lookup(ctx context.Context, locationName, category, country string) (Entry, error) {
	entry := Entry{
		Location:         internal.Location{LocationName: locationName},
		ProviderCategory: category,
	}

	query := locationName
	if suffix, ok := c.schema.CountryISOs[country]; ok {
		query = locationName + " " + suffix
	}

	var geo geocodeResponse
	if err := c.get(ctx, geocodeURL, url.Values{"address": {query}}, &geo); err != nil {
		return entry, err
	}
	if geo.Status == "ZERO_RESULTS" || len(geo.Results) == 0 {
		return entry, nil
	}

	result := geo.Results[0]
	lat, lng := result.Geometry.Location.Lat, result.Geometry.Location.Lng
	entry.Latitude = &lat
	entry.Longitude = &lng
	if result.FormattedAddress != "" {
		addr := result.FormattedAddress
		entry.Location.Location = &addr
	}
	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			name := component.LongName
			switch {
			case strings.Contains(t, "country") && entry.Country == nil:
				entry.Country = &name
			case (strings.Contains(t, "locality") || strings.Contains(t, "sublocality")) && entry.City == nil:
				entry.City = &name
			case t == "postal_code" && entry.ZipCode == nil:
				entry.ZipCode = &name
			case t == "administrative_area_level_1" && entry.State == nil:
				entry.State = &name
			}
		}
	}

	var details detailsResponse
	if err := c.get(ctx, detailsURL, url.Values{"place_id": {result.PlaceID}}, &details); err != nil {
		return entry, err
	}
	if details.Result.InternationalPhoneNumber != "" {
		phone := rePhoneNoise.ReplaceAllString(details.Result.InternationalPhoneNumber, "")
		entry.PhoneNumber = &phone
	}
	if details.Result.Website != "" {
		site := details.Result.Website
		entry.Website = &site
	}
	if len(details.Result.OpeningHours.WeekdayText) > 0 {
		hours := strings.Join(details.Result.OpeningHours.WeekdayText, ", ")
		entry.HoursOperation = &hours
	}
	return entry, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	c.limiter.WaitTurn()

	params.Set("key", c.cfg.GoogleAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Metadata is the curated aggregation input: country -> provider
// category -> location names.
type Metadata map[string]map[string][]string

// Aggregate resolves every curated location name and assigns each a
// durable location id through the identity registry. A failed lookup is
// logged and skipped; the rest of the batch continues.
func (c *Client) Aggregate(ctx context.Context, meta Metadata, ids *registry.IdentityRegistry) ([]Entry, error) {
	var entries []Entry
	for country, categories := range meta {
		for category, names := range categories {
			for _, name := range names {
				entry, err := c.Lookup(ctx, name, category, country)
				if err != nil {
					slog.Warn("geocode lookup failed", "location", name, "country", country, "err", err)
					continue
				}
				entry.LocationID = ids.Resolve(name)
				entries = append(entries, entry)
			}
		}
	}
	return entries, nil
}
