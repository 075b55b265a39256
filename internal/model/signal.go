package model

import "time"

// Action is the directional instruction carried by a signal.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Urgency is the qualitative execution priority of a signal.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyImmediate Urgency = "immediate"
)

// TradingSignal is derived from one MarketEvent. PositionSize is zero until
// the risk gate or the allocator fills it in; nothing else is mutated.
type TradingSignal struct {
	Action       Action
	Asset        string
	Confidence   int // 0-100
	Reasoning    string
	Urgency      Urgency
	TargetPrice  float64
	StopLoss     float64
	PositionSize float64
}

// TradeStatus tracks the lifecycle of a recorded trade.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeFilled    TradeStatus = "filled"
	TradeCancelled TradeStatus = "cancelled"
	TradeFailed    TradeStatus = "failed"
)

// TradeExecution is the feedback record the execution collaborator reports
// back into the risk gate.
type TradeExecution struct {
	ID        string
	Timestamp time.Time
	Symbol    string
	Side      Action
	Amount    float64
	Price     float64
	Status    TradeStatus
	EventID   string
}
