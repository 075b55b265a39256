package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/metrics"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/portfolio"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/risk"
)

// Scheduler manages all cron tasks and drives the news pipeline.
type Scheduler struct {
	Cron           *cron.Cron
	Collector      *collector.Collector
	Gate           *risk.Gate
	Notifier       *notifier.TelegramNotifier
	Recorder       recorder.Recorder
	Metrics        *metrics.Metrics
	RiskCfg        model.RiskConfig
	PortfolioValue float64
	Ctx            context.Context

	mu         sync.Mutex
	lastEvents []*model.MarketEvent
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, gate *risk.Gate, tn *notifier.TelegramNotifier, rec recorder.Recorder, m *metrics.Metrics, riskCfg model.RiskConfig, portfolioValue float64) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		Gate:           gate,
		Notifier:       tn,
		Recorder:       rec,
		Metrics:        m,
		RiskCfg:        riskCfg,
		PortfolioValue: portfolioValue,
		Ctx:            ctx,
	}
}

// RegisterAll registers the news check and daily report tasks.
func (s *Scheduler) RegisterAll(newsCheckCron, dailyReportCron string) error {
	if _, err := s.Cron.AddFunc(newsCheckCron, s.newsCheckTask); err != nil {
		return fmt.Errorf("register news check task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyReportCron, s.dailyReportTask); err != nil {
		return fmt.Errorf("register daily report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCheckNow executes the news check immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunCheckNow() {
	s.newsCheckTask()
}

func (s *Scheduler) newsCheckTask() {
	log.Println("[INFO] running news check")
	events := s.Collector.CheckAll()

	s.mu.Lock()
	s.lastEvents = events
	s.mu.Unlock()

	var signals []*model.TradingSignal
	signalEvent := make(map[*model.TradingSignal]*model.MarketEvent)
	for _, evt := range events {
		s.Metrics.EventsProcessed.Inc()
		if err := s.Recorder.RecordEvent(evt); err != nil {
			log.Printf("[ERROR] record event: %v", err)
		}
		if evt.Signal == nil {
			continue
		}
		s.Metrics.SignalsGenerated.Inc()
		signals = append(signals, evt.Signal)
		signalEvent[evt.Signal] = evt
	}
	if len(signals) == 0 {
		return
	}

	budget := portfolio.Budget(s.PortfolioValue, s.RiskCfg)
	accepted := portfolio.Allocate(s.Gate, signals, s.RiskCfg, budget)

	// Allocate returns sized copies; match them back to their source
	// events by signal identity.
	acceptedByKey := make(map[string][]*model.TradingSignal, len(accepted))
	for _, sig := range accepted {
		k := signalKey(sig)
		acceptedByKey[k] = append(acceptedByKey[k], sig)
	}

	for _, sig := range signals {
		evt := signalEvent[sig]
		k := signalKey(sig)
		var sized *model.TradingSignal
		if q := acceptedByKey[k]; len(q) > 0 {
			sized, acceptedByKey[k] = q[0], q[1:]
		}

		dec := s.Gate.Evaluate(sig, s.RiskCfg)
		ok := sized != nil
		if ok {
			dec.Approved = true
			dec.PositionSize = sized.PositionSize
			s.Metrics.SignalsApproved.Inc()
			s.openPaperTrade(evt, sized)
		} else {
			s.Metrics.SignalsRejected.Inc()
		}

		s.recordDecision(evt, sig, &dec, ok)

		if ok || sig.Urgency == model.UrgencyImmediate {
			s.trySend(notifier.FormatSignalAlert(evt, sig, &dec))
		}
	}

	if len(accepted) > 0 {
		s.trySend(notifier.FormatAllocationReport(accepted, budget))
	}

	s.Metrics.ObserveRisk(s.Gate.Metrics(s.RiskCfg))
}

func signalKey(sig *model.TradingSignal) string {
	return fmt.Sprintf("%s|%s|%d|%s", sig.Asset, sig.Action, sig.Confidence, sig.Reasoning)
}

// openPaperTrade books an accepted signal into the gate and the recorder
// as a pending execution.
func (s *Scheduler) openPaperTrade(evt *model.MarketEvent, sig *model.TradingSignal) {
	trade := model.TradeExecution{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Symbol:    sig.Asset,
		Side:      sig.Action,
		Amount:    sig.PositionSize,
		Price:     sig.TargetPrice,
		Status:    model.TradePending,
		EventID:   evt.ID,
	}
	s.Gate.RecordTrade(trade)
	if err := s.Recorder.RecordTrade(&trade); err != nil {
		log.Printf("[ERROR] record trade: %v", err)
	}
	log.Printf("[INFO] paper trade opened: %s %s %s size %.2f", trade.ID, trade.Side, trade.Symbol, trade.Amount)
}

func (s *Scheduler) recordDecision(evt *model.MarketEvent, sig *model.TradingSignal, dec *risk.Decision, approved bool) {
	rec := &recorder.DecisionRecord{
		EventID:               evt.ID,
		Asset:                 sig.Asset,
		Action:                sig.Action,
		Confidence:            sig.Confidence,
		Urgency:               sig.Urgency,
		Approved:              approved,
		Reason:                dec.Reason,
		PositionSize:          dec.PositionSize,
		RequiresHumanApproval: dec.RequiresHumanApproval,
	}
	if err := s.Recorder.RecordDecision(rec); err != nil {
		log.Printf("[ERROR] record decision: %v", err)
	}
}

func (s *Scheduler) dailyReportTask() {
	log.Println("[INFO] running daily risk report")
	snap := s.Gate.Metrics(s.RiskCfg)
	s.Metrics.ObserveRisk(snap)
	if err := s.Recorder.RecordRiskSnapshot(&snap); err != nil {
		log.Printf("[ERROR] record risk snapshot: %v", err)
	}
	s.trySend(notifier.FormatRiskReport(&snap, s.RiskCfg))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/check":
		s.newsCheckTask()
		return ""
	case "/news":
		s.mu.Lock()
		events := s.lastEvents
		s.mu.Unlock()
		return notifier.FormatEventDigest(events)
	case "/risk":
		snap := s.Gate.Metrics(s.RiskCfg)
		return notifier.FormatRiskReport(&snap, s.RiskCfg)
	default:
		return "Available commands:\n• /check — run a news check now\n• /news — latest scored events\n• /risk — current risk report"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
