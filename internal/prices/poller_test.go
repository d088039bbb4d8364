package prices_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/prices"
)

type scriptedQuoter struct {
	mu      sync.Mutex
	calls   int
	results []func() (float64, error)
}

func (q *scriptedQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := q.calls
	q.calls++
	if i >= len(q.results) {
		i = len(q.results) - 1
	}
	return q.results[i]()
}

func (q *scriptedQuoter) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

func TestPollerSeedsDefaults(t *testing.T) {
	q := &scriptedQuoter{results: []func() (float64, error){
		func() (float64, error) { return 0, errors.New("down") },
	}}
	p := prices.NewPoller(q, time.Hour, map[string]float64{"BTC-USD": 50000}, logging.Discard())

	price, ok := p.Price("BTC-USD")
	if !ok || price != 50000 {
		t.Fatalf("expected seeded 50000, got %v %v", price, ok)
	}
}

func TestPollerKeepsLastValueOnFailure(t *testing.T) {
	q := &scriptedQuoter{results: []func() (float64, error){
		func() (float64, error) { return 0, errors.New("upstream down") },
		func() (float64, error) { return 65000, nil },
	}}
	p := prices.NewPoller(q, 10*time.Millisecond, map[string]float64{"BTC-USD": 50000}, logging.Discard())
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if price, _ := p.Price("BTC-USD"); price == 65000 {
			break
		}
		select {
		case <-deadline:
			price, _ := p.Price("BTC-USD")
			t.Fatalf("price never recovered, still %v after %d calls", price, q.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	snap := p.Current()
	if snap.Prices["BTC-USD"] != 65000 {
		t.Fatalf("snapshot price = %v, want 65000", snap.Prices["BTC-USD"])
	}
	if snap.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set after a successful fetch")
	}
}

func TestPollerStopFreezesState(t *testing.T) {
	q := &scriptedQuoter{results: []func() (float64, error){
		func() (float64, error) { return 70000, nil },
	}}
	p := prices.NewPoller(q, 5*time.Millisecond, map[string]float64{"BTC-USD": 50000}, logging.Discard())
	p.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for {
		if price, _ := p.Price("BTC-USD"); price == 70000 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first fetch never landed")
		case <-time.After(time.Millisecond):
		}
	}

	p.Stop()
	// Let any fetch launched just before Stop drain.
	time.Sleep(20 * time.Millisecond)
	calls := q.callCount()
	time.Sleep(30 * time.Millisecond)
	if got := q.callCount(); got > calls {
		t.Fatalf("poller kept fetching after Stop: %d -> %d", calls, got)
	}
}
