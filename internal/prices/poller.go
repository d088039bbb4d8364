// Package prices keeps a small live cache of market prices, refreshed on a
// fixed interval from the platform API.
package prices

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Quoter fetches the current price for a symbol.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}

// Snapshot is a point-in-time view of the tracked prices.
type Snapshot struct {
	Prices    map[string]float64 `json:"prices"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Poller refreshes a fixed symbol set on an interval. Ticks fire regardless
// of whether the previous fetches finished, and whichever response resolves
// last wins. A failed fetch keeps the previous value.
type Poller struct {
	quoter   Quoter
	symbols  []string
	interval time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	prices  map[string]float64
	updated time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a poller seeded with the given defaults, so consumers see
// a usable price before the first fetch completes.
func NewPoller(quoter Quoter, interval time.Duration, defaults map[string]float64, logger *slog.Logger) *Poller {
	symbols := make([]string, 0, len(defaults))
	prices := make(map[string]float64, len(defaults))
	for sym, price := range defaults {
		symbols = append(symbols, sym)
		prices[sym] = price
	}
	return &Poller{
		quoter:   quoter,
		symbols:  symbols,
		interval: interval,
		logger:   logger,
		prices:   prices,
	}
}

// Start launches the poll loop. It fetches once immediately, then on every
// tick until Stop is called.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.fetchAll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fetchAll(ctx)
			}
		}
	}()
}

// Stop cancels the poll loop. In-flight fetches see the cancelled context
// and drop their result instead of writing it.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Current returns a copy of the tracked prices.
func (p *Poller) Current() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]float64, len(p.prices))
	for sym, price := range p.prices {
		out[sym] = price
	}
	return Snapshot{Prices: out, UpdatedAt: p.updated}
}

// Price returns the last known price for one symbol.
func (p *Poller) Price(symbol string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	price, ok := p.prices[symbol]
	return price, ok
}

// fetchAll issues one request per symbol without waiting for earlier ticks.
func (p *Poller) fetchAll(ctx context.Context) {
	for _, sym := range p.symbols {
		go p.fetchOne(ctx, sym)
	}
}

func (p *Poller) fetchOne(ctx context.Context, symbol string) {
	price, err := p.quoter.Quote(ctx, symbol)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("price fetch failed", "symbol", symbol, "error", err)
		}
		return
	}
	// A fetch that resolves after Stop must not mutate state.
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	p.prices[symbol] = price
	p.updated = time.Now().UTC()
	p.mu.Unlock()
}
