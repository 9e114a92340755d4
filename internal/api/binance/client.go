package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/mkrv/govimpact/internal/platform/http"
	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/pricing"
)

const klineLimit = 1000

// Client is a Binance market-data client. Historical klines need no API key.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Binance client.
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new Binance API client.
func NewClient(options ClientOptions) *Client {
	httpOpts := httpclient.ClientOptions{
		Timeout:        options.RequestTimeout,
		RequestsPerSec: options.RequestsPerSec,
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpclient.NewClient(httpOpts),
		logger:     log.With().Str("component", "binance_client").Logger(),
	}
}

// GetDailyCloses fetches daily-close klines for a trading pair over
// [start, end] and returns them as a price series ascending by open time.
// Binance caps one response at 1000 klines, so the fetch pages forward until
// the range is covered.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) (pricing.Series, error) {
	var series pricing.Series

	cursor := start.UTC()
	for !cursor.After(end) {
		batch, err := c.fetchKlines(ctx, symbol, cursor, end)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		series = append(series, batch...)
		// Next page starts the day after the last kline received.
		cursor = batch[len(batch)-1].Timestamp.Add(24 * time.Hour)
		if len(batch) < klineLimit {
			break
		}
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(series)).Msg("Fetched daily closes")
	return series, nil
}

func (c *Client) fetchKlines(ctx context.Context, symbol string, start, end time.Time) (pricing.Series, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1d")
	q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	q.Set("limit", strconv.Itoa(klineLimit))

	reqURL := fmt.Sprintf("%s/api/v3/klines?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	// Each kline is a positional array:
	// [openTime, open, high, low, close, volume, closeTime, ...]
	var klines [][]json.RawMessage
	if err := json.Unmarshal(body, &klines); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing klines")
		return nil, fmt.Errorf("parsing klines: %w", err)
	}

	var series pricing.Series
	for _, k := range klines {
		if len(k) < 5 {
			return nil, fmt.Errorf("short kline row: %d fields", len(k))
		}
		var openMillis int64
		if err := json.Unmarshal(k[0], &openMillis); err != nil {
			return nil, fmt.Errorf("parsing kline open time: %w", err)
		}
		var closeStr string
		if err := json.Unmarshal(k[4], &closeStr); err != nil {
			return nil, fmt.Errorf("parsing kline close: %w", err)
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing kline close %q: %w", closeStr, err)
		}
		series = append(series, model.PricePoint{
			Timestamp: time.UnixMilli(openMillis).UTC(),
			Price:     closePrice,
		})
	}
	return series, nil
}
