// Package places is a small client for the Google Places API (New) and the
// resolver that turns a place id into a models.PlaceSelection.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DetailsFieldMask selects the place fields the editor pre-fill needs
const DetailsFieldMask = "id,displayName,formattedAddress,editorialSummary,location,photos"

const autocompleteFieldMask = "suggestions.placePrediction.placeId,suggestions.placePrediction.text,suggestions.placePrediction.structuredFormat"

// Config holds configuration for the Places client
type Config struct {
	APIKey            string
	BaseURL           string        // Default: https://places.googleapis.com/v1
	LanguageCode      string        // Default: en
	Timeout           time.Duration // Default: 10s
	RequestsPerMinute int           // Default: 120
	BurstSize         int           // Default: 5
}

// Client handles communication with the Places API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	baseURL     string

	requests atomic.Int64
	errors   atomic.Int64
}

// NewClient creates a new Places API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://places.googleapis.com/v1"
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 120
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: limiter,
		config:      cfg,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Stats returns the number of requests sent and how many failed
func (c *Client) Stats() (requests, errors int64) {
	return c.requests.Load(), c.errors.Load()
}

// Autocomplete returns predictions for input, biased (not restricted) to bias
func (c *Client) Autocomplete(ctx context.Context, input, sessionToken string, bias Bounds) ([]Suggestion, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyQuery
	}

	body := autocompleteRequest{
		Input:        input,
		SessionToken: sessionToken,
		LanguageCode: c.config.LanguageCode,
	}
	if !bias.IsZero() {
		body.LocationBias = &locationBias{Rectangle: viewport{
			Low:  latLng{Latitude: bias.South, Longitude: bias.West},
			High: latLng{Latitude: bias.North, Longitude: bias.East},
		}}
	}

	var resp autocompleteResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/places:autocomplete", autocompleteFieldMask, body, &resp); err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", input, err)
	}

	out := make([]Suggestion, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		p := s.PlacePrediction
		if p == nil || p.PlaceID == "" {
			continue
		}
		out = append(out, Suggestion{
			PlaceID:       p.PlaceID,
			Text:          p.Text.Text,
			MainText:      p.StructuredFormat.MainText.Text,
			SecondaryText: p.StructuredFormat.SecondaryText.Text,
		})
	}
	return out, nil
}

// GetPlace fetches the detail fields in DetailsFieldMask for one place
func (c *Client) GetPlace(ctx context.Context, placeID, sessionToken string) (*Place, error) {
	if placeID == "" {
		return nil, ErrPlaceNotFound
	}

	params := url.Values{}
	params.Set("languageCode", c.config.LanguageCode)
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}
	endpoint := fmt.Sprintf("%s/places/%s?%s", c.baseURL, url.PathEscape(placeID), params.Encode())

	var place Place
	if err := c.do(ctx, http.MethodGet, endpoint, DetailsFieldMask, nil, &place); err != nil {
		return nil, fmt.Errorf("get place %s: %w", placeID, err)
	}
	return &place, nil
}

// PhotoURL resolves a photo resource name to a short-lived display URL
func (c *Client) PhotoURL(ctx context.Context, photoName string, maxHeight int) (string, error) {
	if photoName == "" {
		return "", ErrNoPhoto
	}
	if maxHeight <= 0 {
		maxHeight = 400
	}

	params := url.Values{}
	params.Set("maxHeightPx", strconv.Itoa(maxHeight))
	params.Set("skipHttpRedirect", "true")
	endpoint := fmt.Sprintf("%s/%s/media?%s", c.baseURL, strings.TrimLeft(photoName, "/"), params.Encode())

	var resp photoMediaResponse
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return "", fmt.Errorf("photo media: %w", err)
	}
	if resp.PhotoURI == "" {
		return "", ErrNoPhoto
	}
	return resp.PhotoURI, nil
}

// do performs one rate-limited request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, endpoint, fieldMask string, body, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	c.requests.Add(1)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", fieldMask)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.errors.Add(1)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.errors.Add(1)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Status = er.Error.Status
			apiErr.Message = er.Error.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.errors.Add(1)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
