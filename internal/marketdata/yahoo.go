package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooQuoter reads the regular market price from the Yahoo Finance chart
// endpoint.
type YahooQuoter struct {
	baseURL string
	http    *http.Client
}

// NewYahooQuoter builds a Yahoo quoter. An empty baseURL uses the public
// endpoint.
func NewYahooQuoter(baseURL string) *YahooQuoter {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooQuoter{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (q *YahooQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	endpoint := q.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	// Yahoo rejects requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := q.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("yahoo quote %s: status %d", symbol, resp.StatusCode)
	}

	var payload struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("yahoo quote %s: decode: %w", symbol, err)
	}
	if len(payload.Chart.Result) == 0 || payload.Chart.Result[0].Meta.RegularMarketPrice == 0 {
		return 0, fmt.Errorf("yahoo quote %s: no price in response", symbol)
	}
	return payload.Chart.Result[0].Meta.RegularMarketPrice, nil
}
