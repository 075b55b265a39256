package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/risk"
)

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func sentimentEmoji(s model.Sentiment) string {
	switch s {
	case model.SentimentBullish:
		return "🟢"
	case model.SentimentBearish:
		return "🔴"
	default:
		return "⚪"
	}
}

func severityEmoji(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🚨"
	case model.SeverityHigh:
		return "⚠️"
	default:
		return "📰"
	}
}

// FormatSignalAlert formats one approved (or rejected) signal into a Telegram message.
func FormatSignalAlert(evt *model.MarketEvent, sig *model.TradingSignal, d *risk.Decision) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>CryptoSentinel Signal</b> | %s\n\n",
		severityEmoji(evt.Severity), time.Now().Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("%s %s <b>%s</b> (confidence %d%%)\n",
		sentimentEmoji(evt.Sentiment), strings.ToUpper(string(sig.Action)), sig.Asset, sig.Confidence))
	b.WriteString(fmt.Sprintf("Urgency: %s | Severity: %s\n", sig.Urgency, evt.Severity))
	b.WriteString(fmt.Sprintf("Source: %s\n", evt.Source))
	b.WriteString(fmt.Sprintf("Headline: %s\n\n", evt.Title))

	if d.Approved {
		b.WriteString(fmt.Sprintf("💰 Position size: %s\n", money(d.PositionSize)))
		if d.RequiresHumanApproval {
			b.WriteString("✋ <b>Manual approval required before execution</b>\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("⛔ Rejected: %s\n", d.Reason))
	}

	return b.String()
}

// FormatAllocationReport summarizes one allocation round.
func FormatAllocationReport(accepted []*model.TradingSignal, budget float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Allocation Round</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Budget: %s\n", money(budget)))

	spent := 0.0
	for _, sig := range accepted {
		b.WriteString(fmt.Sprintf("  %s %s %s (conf %d%%, %s)\n",
			sentimentEmoji(sentimentForAction(sig.Action)), strings.ToUpper(string(sig.Action)),
			sig.Asset, sig.Confidence, money(sig.PositionSize)))
		spent += sig.PositionSize
	}
	if len(accepted) == 0 {
		b.WriteString("  no signals accepted\n")
	}
	b.WriteString(fmt.Sprintf("\nAllocated: %s | Remaining: %s\n", money(spent), money(budget-spent)))
	return b.String()
}

func sentimentForAction(a model.Action) model.Sentiment {
	switch a {
	case model.ActionBuy:
		return model.SentimentBullish
	case model.ActionSell:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

// FormatRiskReport formats the daily risk snapshot.
func FormatRiskReport(m *model.RiskMetrics, cfg model.RiskConfig) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🛡 <b>Risk Report</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Portfolio value: %s\n", money(m.PortfolioValue)))
	b.WriteString(fmt.Sprintf("Daily P&amp;L: %+.2f (%.1f%% of limit %.1f%%)\n",
		m.DailyPnL, m.DailyLossPct*100, cfg.MaxDailyLossPct))
	b.WriteString(fmt.Sprintf("Total P&amp;L: %+.2f\n", m.TotalPnL))
	b.WriteString(fmt.Sprintf("Drawdown: %.1f%%\n", m.CurrentDrawdown*100))
	b.WriteString(fmt.Sprintf("Open trades: %d / %d\n", m.OpenTrades, m.MaxConcurrentTrades))
	if m.EmergencyStopActive {
		b.WriteString("\n🚨 <b>EMERGENCY STOP ACTIVE</b> — all new trades blocked\n")
	}
	return b.String()
}

// FormatEventDigest lists the latest scored events for the /news command.
func FormatEventDigest(events []*model.MarketEvent) string {
	if len(events) == 0 {
		return "📭 No relevant news events in the last cycle."
	}
	var b strings.Builder
	b.WriteString("📰 <b>Latest Events</b>\n\n")
	for _, evt := range events {
		b.WriteString(fmt.Sprintf("%s %s [%s] %s (conf %d%%)\n",
			severityEmoji(evt.Severity), sentimentEmoji(evt.Sentiment),
			strings.Join(evt.AffectedAssets, ","), evt.Title, evt.Confidence))
	}
	return b.String()
}
