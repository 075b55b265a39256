package model

// RiskLevel names a preset risk appetite.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
	RiskCustom       RiskLevel = "custom"
)

// RiskConfig bounds what the risk gate will approve. Immutable for the life
// of a gate; reconfiguration replaces it wholesale.
type RiskConfig struct {
	Level                  RiskLevel `yaml:"level"`
	MaxPositionSizePct     float64   `yaml:"max_position_size_pct"`     // % of portfolio per trade
	StopLossPct            float64   `yaml:"stop_loss_pct"`             // % stop loss
	MaxDailyLossPct        float64   `yaml:"max_daily_loss_pct"`        // % max daily loss
	HumanApprovalThreshold float64   `yaml:"human_approval_threshold"`  // % of portfolio above which manual sign-off is required
	MaxConcurrentTrades    int       `yaml:"max_concurrent_trades"`
}

// DefaultRiskConfig mirrors the moderate preset.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Level:                  RiskModerate,
		MaxPositionSizePct:     5,
		StopLossPct:            8,
		MaxDailyLossPct:        10,
		HumanApprovalThreshold: 3,
		MaxConcurrentTrades:    5,
	}
}

// RiskMetrics is a read-only snapshot of the gate's running state.
type RiskMetrics struct {
	PortfolioValue        float64
	DailyPnL              float64
	TotalPnL              float64
	CurrentDrawdown       float64 // |totalPnL| / portfolioValue
	DailyLossPct          float64 // |dailyPnL| / portfolioValue
	OpenTrades            int
	MaxConcurrentTrades   int
	EmergencyStopActive   bool
}
