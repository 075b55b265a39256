package risk

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"CryptoSentinel/internal/model"
)

// MinExecutableConfidence is the approval floor: signals below it are
// informational only and never reach execution.
const MinExecutableConfidence = 70

// drawdownReductionThreshold is the fractional drawdown beyond which
// position sizes are shrunk.
const drawdownReductionThreshold = 0.10

// ErrTradeNotFound is returned when a fill references an unknown trade id.
// This indicates a wiring bug in the execution collaborator, not a market
// condition.
var ErrTradeNotFound = errors.New("trade not found")

// Decision is the structured result of evaluating one signal. Business
// rejections are normal values carrying a human-readable reason; they are
// never errors.
type Decision struct {
	Approved              bool
	Reason                string
	PositionSize          float64
	RequiresHumanApproval bool
}

// Gate is the stateful risk gatekeeper. It owns the running P&L figures and
// the open-trade set exclusively; all access is serialized behind its mutex,
// so concurrent feed and execution callbacks are safe.
type Gate struct {
	mu sync.Mutex

	portfolioValue       float64
	emergencyStopLossPct float64

	dailyPnL     float64
	totalPnL     float64
	lastResetDay string
	openTrades   map[string]*model.TradeExecution

	clock Clock
}

// NewGate constructs a gate over a starting portfolio value and an emergency
// stop ceiling (percent of portfolio). A nil clock uses the wall clock.
// Invalid parameters are reported, never absorbed.
func NewGate(portfolioValue, emergencyStopLossPct float64, clock Clock) (*Gate, error) {
	if portfolioValue <= 0 {
		return nil, fmt.Errorf("risk gate: portfolio value must be positive, got %.2f", portfolioValue)
	}
	if emergencyStopLossPct <= 0 || emergencyStopLossPct > 100 {
		return nil, fmt.Errorf("risk gate: emergency stop loss pct must be in (0,100], got %.2f", emergencyStopLossPct)
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Gate{
		portfolioValue:       portfolioValue,
		emergencyStopLossPct: emergencyStopLossPct,
		lastResetDay:         calendarDay(clock.Now()),
		openTrades:           make(map[string]*model.TradeExecution),
		clock:                clock,
	}, nil
}

// checkDailyReset zeroes dailyPnL exactly once when the calendar day has
// advanced. Callers must hold g.mu. Every public entry point that reads or
// writes dailyPnL runs this first.
func (g *Gate) checkDailyReset() {
	today := calendarDay(g.clock.Now())
	if today != g.lastResetDay {
		log.Printf("[INFO] daily reset: previous day P&L: %.2f", g.dailyPnL)
		g.dailyPnL = 0
		g.lastResetDay = today
	}
}

// Evaluate runs a signal through the risk checks in fixed order,
// short-circuiting on the first failure, and sizes the position when
// approved.
func (g *Gate) Evaluate(signal *model.TradingSignal, cfg model.RiskConfig) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkDailyReset()

	// Signal strength.
	if signal.Confidence < MinExecutableConfidence || signal.Action == model.ActionHold || signal.Urgency == model.UrgencyLow {
		return Decision{
			Approved: false,
			Reason:   fmt.Sprintf("Signal confidence %d%% below minimum threshold (%d%%)", signal.Confidence, MinExecutableConfidence),
		}
	}

	// Daily loss limit.
	maxDailyLoss := g.portfolioValue * cfg.MaxDailyLossPct / 100
	if g.dailyPnL < 0 && -g.dailyPnL > maxDailyLoss {
		return Decision{
			Approved: false,
			Reason:   fmt.Sprintf("Daily loss limit exceeded: %.2f / %.2f", -g.dailyPnL, maxDailyLoss),
		}
	}

	// Concurrent trade cap.
	active := g.activeTradeCount()
	if active >= cfg.MaxConcurrentTrades {
		return Decision{
			Approved: false,
			Reason:   fmt.Sprintf("Maximum concurrent trades reached: %d/%d", active, cfg.MaxConcurrentTrades),
		}
	}

	// Confidence scales exposure.
	basePositionSize := g.portfolioValue * cfg.MaxPositionSizePct / 100 * float64(signal.Confidence) / 100

	// Shrink positions while in a drawdown.
	currentDrawdown := abs(g.totalPnL) / g.portfolioValue
	adjusted := basePositionSize
	if currentDrawdown > drawdownReductionThreshold {
		reduction := 1 - currentDrawdown
		if reduction < 0.5 {
			reduction = 0.5
		}
		adjusted = basePositionSize * reduction
		log.Printf("[WARN] position size reduced due to drawdown %.2f%%: %.2f -> %.2f",
			currentDrawdown*100, basePositionSize, adjusted)
	}

	// Emergency stop overrides everything scored so far.
	if currentDrawdown > g.emergencyStopLossPct/100 {
		return Decision{
			Approved: false,
			Reason: fmt.Sprintf("EMERGENCY STOP: portfolio drawdown %.2f%% exceeds limit %.2f%%",
				currentDrawdown*100, g.emergencyStopLossPct),
		}
	}

	requiresApproval := adjusted/g.portfolioValue*100 > cfg.HumanApprovalThreshold

	return Decision{
		Approved:              true,
		Reason:                fmt.Sprintf("Signal approved: %d%% confidence, %.2f position", signal.Confidence, adjusted),
		PositionSize:          adjusted,
		RequiresHumanApproval: requiresApproval,
	}
}

// RecordTrade inserts a new open trade at order placement. No P&L effect yet.
func (g *Gate) RecordTrade(trade model.TradeExecution) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := trade
	g.openTrades[t.ID] = &t
	log.Printf("[INFO] trade recorded: %s %s %.4f %s at %.2f", t.ID, t.Side, t.Amount, t.Symbol, t.Price)
}

// RecordFill reports a fill for a previously recorded trade, realizing its
// P&L into the daily and total figures. An unknown id is a hard error.
func (g *Gate) RecordFill(tradeID string, exitPrice float64) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkDailyReset()

	trade, ok := g.openTrades[tradeID]
	if !ok {
		return 0, fmt.Errorf("record fill %q: %w", tradeID, ErrTradeNotFound)
	}

	var pnl float64
	if trade.Side == model.ActionBuy {
		pnl = (exitPrice - trade.Price) * trade.Amount
	} else {
		pnl = (trade.Price - exitPrice) * trade.Amount
	}

	g.dailyPnL += pnl
	g.totalPnL += pnl
	trade.Status = model.TradeFilled

	log.Printf("[INFO] trade %s filled: %.2f P&L, daily: %.2f, total: %.2f", tradeID, pnl, g.dailyPnL, g.totalPnL)
	return pnl, nil
}

// UpdateTrade transitions a trade to cancelled or failed, releasing its
// concurrency slot. Fills go through RecordFill.
func (g *Gate) UpdateTrade(tradeID string, status model.TradeStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	trade, ok := g.openTrades[tradeID]
	if !ok {
		return fmt.Errorf("update trade %q: %w", tradeID, ErrTradeNotFound)
	}
	trade.Status = status
	return nil
}

// Metrics returns a read-only snapshot of the gate's state for dashboards
// and notifications.
func (g *Gate) Metrics(cfg model.RiskConfig) model.RiskMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkDailyReset()

	currentDrawdown := abs(g.totalPnL) / g.portfolioValue
	return model.RiskMetrics{
		PortfolioValue:      g.portfolioValue,
		DailyPnL:            g.dailyPnL,
		TotalPnL:            g.totalPnL,
		CurrentDrawdown:     currentDrawdown,
		DailyLossPct:        abs(g.dailyPnL) / g.portfolioValue,
		OpenTrades:          g.activeTradeCount(),
		MaxConcurrentTrades: cfg.MaxConcurrentTrades,
		EmergencyStopActive: currentDrawdown > g.emergencyStopLossPct/100,
	}
}

// activeTradeCount counts trades in pending or filled status. Callers must
// hold g.mu.
func (g *Gate) activeTradeCount() int {
	n := 0
	for _, t := range g.openTrades {
		if t.Status == model.TradePending || t.Status == model.TradeFilled {
			n++
		}
	}
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
