// Package sensibull is the client for the upstream options-analytics API:
// the combined instrument metacache and the per-symbol IV/OHLC chart feed.
package sensibull

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://oxide.sensibull.com"

const (
	metacachePath = "/v1/compute/cache/instrument_metacache/2"
	ivChartPath   = "/v1/compute/iv_chart/{symbol}"
)

// Client talks to the upstream API. Safe for concurrent use; the fetch
// worker pool shares one Client.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client against baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Minute).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// InstrumentMetacache fetches the combined reference/derivatives document.
// A failure here is fatal to an ingestion run: nothing downstream can
// proceed without the symbol universe.
func (c *Client) InstrumentMetacache(ctx context.Context) (*Metacache, error) {
	var mc Metacache
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&mc).
		Get(metacachePath)
	if err != nil {
		return nil, fmt.Errorf("fetch instrument metacache: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch instrument metacache: status %s", resp.Status())
	}
	if mc.Derivatives == nil {
		return nil, fmt.Errorf("instrument metacache: missing derivatives")
	}
	if mc.UnderlyerList == nil {
		return nil, fmt.Errorf("instrument metacache: missing underlyer_list")
	}
	return &mc, nil
}

// IVChart fetches the daily IV/OHLC history for one tradingsymbol. Errors
// are per-symbol: callers log and move on.
func (c *Client) IVChart(ctx context.Context, symbol string) (*IVChart, error) {
	var body ivChartResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetResult(&body).
		Get(ivChartPath)
	if err != nil {
		return nil, fmt.Errorf("fetch iv chart: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch iv chart: status %s", resp.Status())
	}
	if body.Payload.IVOHLCData == nil {
		return nil, fmt.Errorf("iv chart: missing iv_ohlc_data")
	}
	return &IVChart{Symbol: symbol, Data: body.Payload.IVOHLCData}, nil
}
