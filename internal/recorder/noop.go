package recorder

import "CryptoSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ *model.MarketEvent) error        { return nil }
func (n *NoopRecorder) RecordDecision(_ *DecisionRecord) error        { return nil }
func (n *NoopRecorder) RecordTrade(_ *model.TradeExecution) error     { return nil }
func (n *NoopRecorder) RecordRiskSnapshot(_ *model.RiskMetrics) error { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
