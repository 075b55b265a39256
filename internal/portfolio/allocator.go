// Package portfolio selects and sizes a batch of risk-evaluated signals
// against a capital budget.
package portfolio

import (
	"log"
	"sort"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/risk"
)

// Evaluator is the slice of the risk gate the allocator needs. The gate
// satisfies it directly.
type Evaluator interface {
	Evaluate(signal *model.TradingSignal, cfg model.RiskConfig) risk.Decision
}

// Allocate walks candidate signals greedily, immediate urgency first and
// then by descending confidence, re-evaluating each through the gate and
// accepting it only when its approved size fits the remaining budget.
// Skipped signals are not revisited and positions are never partially
// filled. Input signals are not mutated; accepted ones are returned as
// copies carrying their final PositionSize.
func Allocate(gate Evaluator, signals []*model.TradingSignal, cfg model.RiskConfig, budget float64) []*model.TradingSignal {
	candidates := make([]*model.TradingSignal, len(signals))
	copy(candidates, signals)

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.Urgency == model.UrgencyImmediate) != (b.Urgency == model.UrgencyImmediate) {
			return a.Urgency == model.UrgencyImmediate
		}
		return a.Confidence > b.Confidence
	})

	var accepted []*model.TradingSignal
	remaining := budget

	for _, candidate := range candidates {
		dec := gate.Evaluate(candidate, cfg)
		if !dec.Approved {
			log.Printf("[INFO] allocator skipped %s %s: %s", candidate.Asset, candidate.Action, dec.Reason)
			continue
		}
		if dec.PositionSize > remaining {
			continue
		}

		sized := *candidate
		sized.PositionSize = dec.PositionSize
		accepted = append(accepted, &sized)
		remaining -= dec.PositionSize
	}

	return accepted
}

// Budget derives the capital budget for one allocation round from the
// portfolio value and the per-trade position cap.
func Budget(portfolioValue float64, cfg model.RiskConfig) float64 {
	return portfolioValue * cfg.MaxPositionSizePct / 100
}
