// Package nasapower is a thin client for the NASA POWER daily point API,
// the source of the per-country weather series.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

const defaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// missingSentinel marks absent readings in POWER responses.
const missingSentinel = -999

// Client fetches daily observations for a point from the POWER API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a POWER client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL is NewClient pointed at a different endpoint, for
// tests against a local server.
func NewClientWithBaseURL(timeout time.Duration, baseURL string) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

// Daily fetches the configured parameters for one point over [start, end].
// Sentinel readings come back as NaN so callers can treat them as missing.
func (c *Client) Daily(ctx context.Context, loc schema.Location, start, end time.Time, params []schema.WeatherParameter) (map[schema.WeatherParameter]schema.TimeSeries, error) {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = string(p)
	}

	q := url.Values{
		"parameters": {strings.Join(names, ",")},
		"community":  {"AG"},
		"longitude":  {fmt.Sprintf("%.4f", loc.Longitude)},
		"latitude":   {fmt.Sprintf("%.4f", loc.Latitude)},
		"start":      {start.Format(contract.CompactDay)},
		"end":        {end.Format(contract.CompactDay)},
		"format":     {"JSON"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("power request for %s: %w", loc.Country, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("power API error: status %d: %s", resp.StatusCode, body)
	}

	var powerResp response
	if err := json.NewDecoder(resp.Body).Decode(&powerResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make(map[schema.WeatherParameter]schema.TimeSeries, len(params))
	for _, p := range params {
		byDay, ok := powerResp.Properties.Parameter[string(p)]
		if !ok {
			continue
		}
		days := make([]string, 0, len(byDay))
		for day := range byDay {
			days = append(days, day)
		}
		sort.Strings(days)

		obs := make([]schema.Observation, 0, len(days))
		for _, day := range days {
			d, err := contract.ParseDay(day)
			if err != nil {
				continue
			}
			v := byDay[day]
			if v == missingSentinel {
				v = math.NaN()
			}
			obs = append(obs, schema.Observation{Date: d, Value: v})
		}
		out[p] = schema.NewTimeSeries(obs)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("power response for %s had no parameter data", loc.Country)
	}
	return out, nil
}

// POWER API response types. The parameter block maps parameter name to a
// compact-day keyed object of readings.

type response struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Parameter map[string]map[string]float64 `json:"parameter"`
}
