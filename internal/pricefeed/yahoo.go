package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// DefaultYahooBaseURL is the Yahoo Finance chart endpoint.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooClient fetches quotes from the Yahoo Finance chart API. Outgoing
// requests are throttled by a token bucket shared by every caller.
type YahooClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// YahooOption configures a YahooClient.
type YahooOption func(*YahooClient)

// WithBaseURL points the client at another chart endpoint.
func WithBaseURL(u string) YahooOption {
	return func(c *YahooClient) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) YahooOption {
	return func(c *YahooClient) { c.httpClient = hc }
}

// NewYahooClient creates a client allowing requestsPerSecond requests per
// second. A non-positive rate disables throttling.
func NewYahooClient(requestsPerSecond float64, opts ...YahooOption) *YahooClient {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	c := &YahooClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(limit, 1),
		baseURL:    DefaultYahooBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quote returns the most recent closing price of symbol over the last five
// trading days.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (model.PriceQuote, error) {
	resp, err := c.queryFiveDay(ctx, symbol)
	if err != nil {
		return model.PriceQuote{}, err
	}

	result := resp.Chart.Result[0]
	candles, err := parseCandles(result)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("%s: %w", symbol, err)
	}

	last := candles[len(candles)-1]
	return model.PriceQuote{
		Symbol:   symbol,
		Price:    last.Close,
		Currency: result.Meta.Currency,
		AsOf:     last.Date,
	}, nil
}

// parseCandles extracts the non-null closing prices in chronological order.
func parseCandles(result chartResult) ([]Candle, error) {
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return nil, fmt.Errorf("no close prices returned")
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths")
	}

	candles := make([]Candle, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		candles = append(candles, Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("no close prices returned")
	}
	return candles, nil
}

func (c *YahooClient) queryFiveDay(ctx context.Context, symbol string) (chartResponse, error) {
	u := c.baseURL + url.PathEscape(symbol) + "?interval=1d&range=5d"

	result, err := c.query(ctx, u)
	if err != nil {
		return chartResponse{}, err
	}
	if len(result.Chart.Result) == 0 {
		return chartResponse{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return result, nil
}

func (c *YahooClient) query(ctx context.Context, u string) (chartResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return chartResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return chartResponse{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chartResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chartResponse{}, err
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return chartResponse{}, fmt.Errorf("yahoo: decode response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		if response.Chart.Error.Code == "Not Found" {
			return response, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, response.Chart.Error.Description)
		}
		return response, fmt.Errorf("yahoo error: %s", response.Chart.Error.Description)
	}

	return response, nil
}
