// Package google implements ports.Geocoder over the Google Maps Geocoding and
// Places HTTP JSON APIs.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
	"github.com/99minutos/delivery-zones/internal/pkg/metrics"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20

	opGeocode      = "geocode"
	opAutocomplete = "autocomplete"
	opDetails      = "place_details"

	detailsFields = "address_component,formatted_address,geometry,place_id"
)

// Config captures the provider settings. The client never retries.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	Region     string
	Language   string
	Country    string
	HTTPClient *http.Client
}

// Client calls the provider. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	timeout  time.Duration
	region   string
	language string
	country  string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient builds a Client. A missing API key does not fail construction;
// every call then fails fast with FailureProviderMisconfigured.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	log = log.With().Str("component", "google_geocoder").Logger()

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.APIKey == "" {
		log.Error().Str("alert", "operator").Msg("GOOGLE_MAPS_API_KEY is not configured, address lookups will fail")
	}

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		timeout:  timeout,
		region:   cfg.Region,
		language: cfg.Language,
		country:  strings.ToLower(cfg.Country),
		http:     httpClient,
		log:      log,
	}
}

// Geocode returns the provider's first candidate for address.
func (c *Client) Geocode(ctx context.Context, address, city string) (*domain.ResolvedAddress, error) {
	if err := c.requireKey(opGeocode); err != nil {
		return nil, err
	}

	params := c.params()
	params.Set("address", withCity(address, city))
	if c.region != "" {
		params.Set("region", c.region)
	}

	var resp geocodeResponse
	if err := c.get(ctx, opGeocode, "/geocode/json", params, &resp); err != nil {
		return nil, err
	}
	if err := c.checkStatus(opGeocode, resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		c.record(opGeocode, domain.FailureNotFound)
		return nil, &domain.GeocodeError{Failure: domain.FailureNotFound, Status: string(resp.Status), Message: "no results"}
	}

	if err := c.checkShape(opGeocode, resp.Results[0]); err != nil {
		return nil, err
	}

	c.record(opGeocode, 0)
	return resp.Results[0].toResolved(), nil
}

// Autocomplete returns up to ports.MaxSuggestions suggestions. Details are
// fetched concurrently; a failed detail lookup degrades that suggestion to
// its raw description instead of failing the call.
func (c *Client) Autocomplete(ctx context.Context, query, city string) ([]domain.Suggestion, error) {
	if err := c.requireKey(opAutocomplete); err != nil {
		return nil, err
	}

	params := c.params()
	params.Set("input", withCity(query, city))
	params.Set("types", "address")
	if c.country != "" {
		params.Set("components", "country:"+c.country)
	}

	var resp autocompleteResponse
	if err := c.get(ctx, opAutocomplete, "/place/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == StatusZeroResults {
		c.record(opAutocomplete, 0)
		return []domain.Suggestion{}, nil
	}
	if err := c.checkStatus(opAutocomplete, resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}
	c.record(opAutocomplete, 0)

	predictions := resp.Predictions
	if len(predictions) > ports.MaxSuggestions {
		predictions = predictions[:ports.MaxSuggestions]
	}

	out := make([]domain.Suggestion, len(predictions))
	var g errgroup.Group
	g.SetLimit(ports.MaxSuggestions)
	for i, p := range predictions {
		g.Go(func() error {
			out[i] = c.suggestion(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

// ResolvePlace fetches details for a place identifier.
func (c *Client) ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error) {
	if err := c.requireKey(opDetails); err != nil {
		return nil, err
	}
	return c.details(ctx, placeID)
}

func (c *Client) suggestion(ctx context.Context, p prediction) domain.Suggestion {
	raw := domain.Suggestion{FormattedAddress: p.Description, PlaceID: p.PlaceID}
	if p.PlaceID == "" {
		metrics.SuggestionDegradedTotal.Inc()
		return raw
	}

	res, err := c.details(ctx, p.PlaceID)
	if err != nil {
		metrics.SuggestionDegradedTotal.Inc()
		c.log.Warn().Err(err).Str("place_id", p.PlaceID).Msg("suggestion details unavailable, using raw description")
		return raw
	}

	formatted := res.FormattedAddress
	if formatted == "" {
		formatted = p.Description
	}
	return domain.Suggestion{FormattedAddress: formatted, Components: res.Components, PlaceID: p.PlaceID}
}

func (c *Client) details(ctx context.Context, placeID string) (*domain.ResolvedAddress, error) {
	params := c.params()
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	var resp detailsResponse
	if err := c.get(ctx, opDetails, "/place/details/json", params, &resp); err != nil {
		return nil, err
	}
	if err := c.checkStatus(opDetails, resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	if err := c.checkShape(opDetails, resp.Result); err != nil {
		return nil, err
	}

	c.record(opDetails, 0)
	res := resp.Result.toResolved()
	if res.PlaceID == "" {
		res.PlaceID = placeID
	}
	return res, nil
}

func (c *Client) requireKey(op string) error {
	if c.apiKey != "" {
		return nil
	}
	c.record(op, domain.FailureProviderMisconfigured)
	return &domain.GeocodeError{Failure: domain.FailureProviderMisconfigured, Message: "provider API key is not configured"}
}

// params returns the query parameters shared by every call.
func (c *Client) params() url.Values {
	v := url.Values{}
	v.Set("key", c.apiKey)
	if c.language != "" {
		v.Set("language", c.language)
	}
	return v
}

// get performs a GET bounded by the client timeout and decodes the JSON body
// into out. Transport failures, timeouts, non-200 responses and undecodable
// bodies are all FailureUnavailable, except HTTP 429 which is a quota
// failure.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return c.fail(op, domain.FailureUnavailable, "", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GeocodeRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		// url.Error embeds the request URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return c.fail(op, domain.FailureUnavailable, "", "provider request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return c.fail(op, domain.FailureQuotaExceeded, "", fmt.Sprintf("provider returned HTTP %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return c.fail(op, domain.FailureUnavailable, "", fmt.Sprintf("provider returned HTTP %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return c.fail(op, domain.FailureUnavailable, "", "unexpected response shape", err)
	}
	return nil
}

func (c *Client) checkStatus(op string, status Status, providerMsg string) error {
	f := status.failure()
	if f == 0 {
		return nil
	}
	return c.fail(op, f, string(status), providerMsg, nil)
}

// checkShape rejects an OK result that cannot be used: it must carry a
// formatted address and a location.
func (c *Client) checkShape(op string, r placeResult) error {
	if strings.TrimSpace(r.FormattedAddress) == "" || r.Geometry.Location == nil {
		return c.fail(op, domain.FailureUnavailable, string(StatusOK), "unexpected response shape", nil)
	}
	return nil
}

func (c *Client) fail(op string, f domain.GeocodeFailure, status, msg string, err error) error {
	c.record(op, f)

	ev := c.log.Warn()
	if f != domain.FailureNotFound && f != domain.FailureInvalidInput {
		ev = c.log.Error()
	}
	ev.Err(err).
		Str("operation", op).
		Str("failure", f.String()).
		Str("provider_status", status).
		Str("provider_message", msg).
		Msg("geocoding provider call failed")

	return &domain.GeocodeError{Failure: f, Status: status, Message: msg, Err: err}
}

func (c *Client) record(op string, f domain.GeocodeFailure) {
	outcome := "ok"
	if f != 0 {
		outcome = f.String()
	}
	metrics.GeocodeRequestsTotal.WithLabelValues(op, outcome).Inc()
}

// withCity appends the city hint unless the text already mentions it.
func withCity(text, city string) string {
	text = strings.TrimSpace(text)
	city = strings.TrimSpace(city)
	if city == "" || strings.Contains(strings.ToLower(text), strings.ToLower(city)) {
		return text
	}
	return text + ", " + city
}
