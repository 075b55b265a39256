package model

import "time"

// EventType indicates what kind of market event was detected.
type EventType string

const (
	EventNews       EventType = "news"
	EventOnChain    EventType = "onchain"
	EventSocial     EventType = "social"
	EventRegulatory EventType = "regulatory"
)

// Severity grades how market-moving an event is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Sentiment is the directional reading of an event's text.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// MarketEvent is one scored text item flowing through the pipeline.
// Immutable once Confidence and Signal are attached.
type MarketEvent struct {
	ID             string
	Timestamp      time.Time
	Source         string
	SourcePriority int
	Type           EventType
	Severity       Severity
	AffectedAssets []string
	Title          string
	Content        string
	Sentiment      Sentiment
	Confidence     int // 0-100
	Signal         *TradingSignal
}

// DedupeKey is the composite identity of an article: source + title + publish time.
// The collector uses it to skip items it has already emitted.
func (e *MarketEvent) DedupeKey() string {
	return e.Source + "|" + e.Title + "|" + e.Timestamp.UTC().Format(time.RFC3339)
}
