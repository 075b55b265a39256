package recorder

import "CryptoSentinel/internal/model"

// DecisionRecord holds one risk-gate verdict for a generated signal.
type DecisionRecord struct {
	EventID               string
	Asset                 string
	Action                model.Action
	Confidence            int
	Urgency               model.Urgency
	Approved              bool
	Reason                string
	PositionSize          float64
	RequiresHumanApproval bool
}

// Recorder persists pipeline history for analysis.
type Recorder interface {
	RecordEvent(evt *model.MarketEvent) error
	RecordDecision(rec *DecisionRecord) error
	RecordTrade(t *model.TradeExecution) error
	RecordRiskSnapshot(m *model.RiskMetrics) error
	Close() error
}
