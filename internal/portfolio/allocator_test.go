package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/risk"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func newGate(t *testing.T, portfolioValue float64) *risk.Gate {
	t.Helper()
	gate, err := risk.NewGate(portfolioValue, 25, fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return gate
}

func signal(asset string, confidence int, urgency model.Urgency) *model.TradingSignal {
	return &model.TradingSignal{
		Action:     model.ActionBuy,
		Asset:      asset,
		Confidence: confidence,
		Urgency:    urgency,
	}
}

func TestAllocate_OrderingAndBudget(t *testing.T) {
	gate := newGate(t, 10000)
	cfg := model.DefaultRiskConfig()

	signals := []*model.TradingSignal{
		signal("ETH", 95, model.UrgencyHigh),
		signal("BTC", 80, model.UrgencyImmediate), // immediate wins despite lower confidence
		signal("SOL", 90, model.UrgencyHigh),
	}

	budget := Budget(10000, cfg) // 500
	accepted := Allocate(gate, signals, cfg, budget)

	require.NotEmpty(t, accepted)
	assert.Equal(t, "BTC", accepted[0].Asset)

	total := 0.0
	for _, s := range accepted {
		assert.Greater(t, s.PositionSize, 0.0)
		total += s.PositionSize
	}
	assert.LessOrEqual(t, total, budget)

	// BTC at 80% confidence takes 400 of the 500 budget; ETH (475) and
	// SOL (450) no longer fit, and the walk never backtracks.
	assert.Len(t, accepted, 1)
}

func TestAllocate_RejectedSignalsSkipped(t *testing.T) {
	gate := newGate(t, 10000)
	cfg := model.DefaultRiskConfig()

	signals := []*model.TradingSignal{
		signal("BTC", 65, model.UrgencyHigh), // below the 70% execution floor
		{Action: model.ActionHold, Asset: "ETH", Confidence: 90, Urgency: model.UrgencyHigh},
	}

	accepted := Allocate(gate, signals, cfg, Budget(10000, cfg))
	assert.Empty(t, accepted)
}

func TestAllocate_NeverExceedsBudget(t *testing.T) {
	gate := newGate(t, 100000)
	cfg := model.DefaultRiskConfig()
	cfg.MaxConcurrentTrades = 100

	var signals []*model.TradingSignal
	assets := []string{"BTC", "ETH", "SOL", "ADA", "DOT", "LINK", "AVAX", "ATOM"}
	for i, asset := range assets {
		urgency := model.UrgencyHigh
		if i%3 == 0 {
			urgency = model.UrgencyImmediate
		}
		signals = append(signals, signal(asset, 70+i*4, urgency))
	}

	for _, budget := range []float64{0, 100, 1000, 5000} {
		accepted := Allocate(gate, signals, cfg, budget)
		total := 0.0
		for _, s := range accepted {
			total += s.PositionSize
		}
		assert.LessOrEqual(t, total, budget, "budget %.0f overspent", budget)
	}
}

func TestAllocate_InputNotMutated(t *testing.T) {
	gate := newGate(t, 10000)
	cfg := model.DefaultRiskConfig()

	original := signal("BTC", 90, model.UrgencyImmediate)
	accepted := Allocate(gate, []*model.TradingSignal{original}, cfg, Budget(10000, cfg))

	require.Len(t, accepted, 1)
	assert.Zero(t, original.PositionSize)
	assert.NotZero(t, accepted[0].PositionSize)
}
