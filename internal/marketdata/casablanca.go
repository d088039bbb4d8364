package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const casablancaBaseURL = "https://www.casablanca-bourse.com"

var priceToken = regexp.MustCompile(`\d[\d\s .,]*\d|\d`)

// CasablancaQuoter scrapes the instrument page of the Casablanca exchange.
// The page carries prices in French formatting, so the first numeric token
// found is normalized before parsing.
type CasablancaQuoter struct {
	baseURL string
	paths   map[string]string
	http    *http.Client
}

// NewCasablancaQuoter builds a Casablanca quoter. An empty baseURL uses the
// public site.
func NewCasablancaQuoter(baseURL string) *CasablancaQuoter {
	if baseURL == "" {
		baseURL = casablancaBaseURL
	}
	return &CasablancaQuoter{
		baseURL: baseURL,
		paths: map[string]string{
			"IAM": "/fr/live-market/instrument/MA0000011488",
		},
		http: &http.Client{Timeout: 8 * time.Second},
	}
}

// Supports reports whether the quoter knows the instrument page for a
// symbol.
func (q *CasablancaQuoter) Supports(symbol string) bool {
	_, ok := q.paths[strings.ToUpper(symbol)]
	return ok
}

func (q *CasablancaQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	path, ok := q.paths[strings.ToUpper(symbol)]
	if !ok {
		return 0, fmt.Errorf("casablanca quote: unknown symbol %q", symbol)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := q.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("casablanca quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("casablanca quote %s: status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("casablanca quote %s: read: %w", symbol, err)
	}

	price, err := ExtractPrice(string(body))
	if err != nil {
		return 0, fmt.Errorf("casablanca quote %s: %w", symbol, err)
	}
	return price, nil
}

// ExtractPrice finds the first numeric token in a page fragment and parses
// it as a price. Separators are ambiguous in the wild ("1 234,56",
// "1,234.56", "11,50"): the last separator is the decimal mark when it is
// followed by at most two digits, everything else is grouping.
func ExtractPrice(text string) (float64, error) {
	token := priceToken.FindString(text)
	if token == "" {
		return 0, fmt.Errorf("no numeric token found")
	}
	normalized := normalizeNumber(token)
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", token, err)
	}
	return price, nil
}

func normalizeNumber(token string) string {
	cleaned := strings.NewReplacer(" ", "", " ", "").Replace(token)

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	lastSep := lastComma
	if lastDot > lastSep {
		lastSep = lastDot
	}
	if lastSep == -1 {
		return cleaned
	}

	decimals := len(cleaned) - lastSep - 1
	intPart := strings.NewReplacer(",", "", ".", "").Replace(cleaned[:lastSep])
	if decimals >= 1 && decimals <= 2 {
		return intPart + "." + cleaned[lastSep+1:]
	}
	return intPart + strings.NewReplacer(",", "", ".", "").Replace(cleaned[lastSep:])
}
