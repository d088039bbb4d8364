// Package trading records simulated trades against a challenge and applies
// their profit to the challenge equity.
package trading

import "time"

// Trade sides.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Trade is one executed round trip: opened and closed in a single request.
type Trade struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	Symbol      string    `json:"symbol"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	OpenPrice   float64   `json:"open_price"`
	ClosePrice  float64   `json:"close_price"`
	PnL         float64   `json:"pnl"`
	CreatedAt   time.Time `json:"created_at"`
}

// PnL computes the realized profit of a round trip. Buys profit when the
// close is above the open, sells when it is below.
func PnL(side string, quantity int, open, close float64) float64 {
	if side == SideSell {
		return (open - close) * float64(quantity)
	}
	return (close - open) * float64(quantity)
}

// LeaderboardEntry is one ranked row of the public leaderboard.
type LeaderboardEntry struct {
	Username  string  `json:"username"`
	ProfitPct float64 `json:"profit_pct"`
	TotalPnL  float64 `json:"total_pnl"`
}
