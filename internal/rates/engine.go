package rates

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"blendScope/internal/model"
)

var (
	// MinModifier keeps the reactive modifier strictly positive.
	MinModifier = decimal.NewFromFloat(0.1)
	// MaxModifier bounds how far sustained over-utilization can push rates.
	MaxModifier = decimal.NewFromInt(10)
)

// ReactiveState is the per-pool-asset record the engine evolves between
// calls. It is owned exclusively by the engine.
type ReactiveState struct {
	Modifier   decimal.Decimal
	LastUpdate time.Time
}

type stateEntry struct {
	mu       sync.Mutex
	modifier decimal.Decimal
	last     time.Time
}

// Engine computes reactive rates, owning the modifier table instead of
// reaching for process-wide state. Calls for the same key are serialized on
// a per-key lock; different keys proceed independently.
type Engine struct {
	mu     sync.Mutex
	states map[string]*stateEntry
	now    func() time.Time
}

// NewEngine builds an engine using the wall clock.
func NewEngine() *Engine {
	return NewEngineWithClock(time.Now)
}

// NewEngineWithClock builds an engine with an injected clock, for tests and
// replaying captured data.
func NewEngineWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		states: make(map[string]*stateEntry),
		now:    now,
	}
}

func (e *Engine) entry(key string, initial decimal.Decimal) *stateEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.states[key]
	if !ok {
		en = &stateEntry{modifier: initial, last: e.now()}
		e.states[key] = en
	}
	return en
}

// State returns a copy of the reactive state for a key, if any.
func (e *Engine) State(key string) (ReactiveState, bool) {
	e.mu.Lock()
	en, ok := e.states[key]
	e.mu.Unlock()
	if !ok {
		return ReactiveState{}, false
	}
	en.mu.Lock()
	defer en.mu.Unlock()
	return ReactiveState{Modifier: en.modifier, LastUpdate: en.last}, true
}

// ReactiveRate applies the slowly-adapting modifier to the kinked curve. The
// modifier drifts toward utilization pressure: it grows while utilization
// sits above target and shrinks below it, scaled by the config's reactivity
// and the elapsed time, and never leaves [MinModifier, MaxModifier]. The new
// modifier and timestamp are persisted before the rate is returned.
func (e *Engine) ReactiveRate(utilization decimal.Decimal, cfg model.InterestRateConfig, key string) decimal.Decimal {
	if utilization.Sign() < 0 {
		return decimal.Zero
	}

	initial := cfg.IRModifier
	if initial.Sign() <= 0 {
		initial = decimal.NewFromInt(1)
	}
	initial = clampModifier(initial)

	en := e.entry(key, initial)
	en.mu.Lock()
	defer en.mu.Unlock()

	now := e.now()
	elapsed := now.Sub(en.last).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	gap := utilization.Sub(cfg.TargetUtilization)
	delta := cfg.Reactivity.Mul(gap).Mul(decimal.NewFromFloat(elapsed))
	en.modifier = clampModifier(en.modifier.Add(delta))
	en.last = now

	return KinkedRate(utilization, cfg).Mul(en.modifier)
}

func clampModifier(m decimal.Decimal) decimal.Decimal {
	if m.LessThan(MinModifier) {
		return MinModifier
	}
	if m.GreaterThan(MaxModifier) {
		return MaxModifier
	}
	return m
}
