// Package challenge manages funded-trading challenges: purchase, equity
// tracking and the pass/fail lifecycle.
package challenge

import (
	"strings"
	"time"
)

// Challenge lifecycle states. Terminal states are sticky: once failed or
// passed, later trades never move a challenge back to active.
const (
	StatusActive = "active"
	StatusFailed = "failed"
	StatusPassed = "passed"
)

// Risk rules applied on every equity update.
const (
	DailyLossLimit = 0.05
	TotalLossLimit = 0.10
	ProfitTarget   = 0.10
)

// Challenge is one purchased trading challenge.
type Challenge struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	PlanType      string    `json:"plan_type"`
	StartBalance  float64   `json:"start_balance"`
	CurrentEquity float64   `json:"current_equity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Terminal reports whether the challenge reached a final state.
func (c *Challenge) Terminal() bool {
	return c.Status == StatusFailed || c.Status == StatusPassed
}

var planBalances = map[string]float64{
	"starter":    5000,
	"standard":   10000,
	"pro":        25000,
	"enterprise": 50000,
}

// PlanBalance maps a plan type to its starting balance. Unknown plans get
// the starter balance.
func PlanBalance(planType string) (string, float64) {
	plan := strings.ToLower(strings.TrimSpace(planType))
	if balance, ok := planBalances[plan]; ok {
		return plan, balance
	}
	return "starter", planBalances["starter"]
}

// NextStatus applies the risk rules to an equity level. pnlBeforeToday is
// the cumulative profit recorded before the current UTC day; it anchors the
// daily-loss baseline at the equity the challenge opened the day with.
// Terminal states are returned unchanged.
func NextStatus(c *Challenge, equity, pnlBeforeToday float64) string {
	if c.Terminal() {
		return c.Status
	}

	if equity <= c.StartBalance*(1-TotalLossLimit) {
		return StatusFailed
	}

	dayStart := c.StartBalance + pnlBeforeToday
	if dayStart > 0 && equity <= dayStart*(1-DailyLossLimit) {
		return StatusFailed
	}

	if equity >= c.StartBalance*(1+ProfitTarget) {
		return StatusPassed
	}
	return StatusActive
}
