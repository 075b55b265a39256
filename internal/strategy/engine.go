package strategy

import (
	"fmt"

	"CryptoSentinel/internal/model"
)

// MinSignalConfidence is the floor below which an event is too weak to act on.
const MinSignalConfidence = 60

// DefaultAsset is used when an event somehow carries no affected assets.
const DefaultAsset = "BTC"

// Evaluate derives a directional trading signal from one scored event.
// Returns nil when the event is not actionable. Pure mapping: no external
// state is read or written.
func Evaluate(event *model.MarketEvent) *model.TradingSignal {
	if event.Confidence < MinSignalConfidence {
		return nil
	}

	asset := DefaultAsset
	if len(event.AffectedAssets) > 0 {
		asset = event.AffectedAssets[0]
	}

	signal := &model.TradingSignal{
		Action:     model.ActionHold,
		Asset:      asset,
		Confidence: event.Confidence,
		Reasoning:  fmt.Sprintf("Based on %s event: %s", event.Type, event.Title),
		Urgency:    model.UrgencyMedium,
	}

	// Direction requires both a directional sentiment and a non-trivial severity.
	if event.Severity != model.SeverityLow {
		switch event.Sentiment {
		case model.SentimentBullish:
			signal.Action = model.ActionBuy
		case model.SentimentBearish:
			signal.Action = model.ActionSell
		}
		if signal.Action != model.ActionHold {
			if event.Severity == model.SeverityCritical {
				signal.Urgency = model.UrgencyImmediate
			} else {
				signal.Urgency = model.UrgencyHigh
			}
		}
	}

	// A critical-severity directional move carries added certainty.
	if signal.Urgency == model.UrgencyImmediate {
		signal.Confidence += 10
		if signal.Confidence > 100 {
			signal.Confidence = 100
		}
	}

	return signal
}
