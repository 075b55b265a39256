package scorer

import (
	"strings"
	"testing"

	"CryptoSentinel/internal/model"
)

func TestSentiment(t *testing.T) {
	s := New(DefaultLexicon())

	tests := []struct {
		text string
		want model.Sentiment
	}{
		{"Bitcoin rally continues as institutional adoption grows", model.SentimentBullish},
		{"Exchange hack triggers panic sell-off and fear", model.SentimentBearish},
		{"Bitcoin price unchanged this week", model.SentimentNeutral},
		{"", model.SentimentNeutral},
		// One bullish and one bearish keyword tie to neutral.
		{"rally then crash", model.SentimentNeutral},
	}
	for _, tt := range tests {
		if got := s.Sentiment(tt.text); got != tt.want {
			t.Errorf("Sentiment(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestSeverity_TierPriorityGates(t *testing.T) {
	s := New(DefaultLexicon())

	tests := []struct {
		text     string
		priority int
		want     model.Severity
	}{
		{"major exchange hack reported", 1, model.SeverityCritical}, // critical ignores priority
		{"new etf partnership announced", 7, model.SeverityHigh},
		{"new etf partnership announced", 6, model.SeverityLow}, // high needs priority >= 7
		{"weekly market trend analysis", 5, model.SeverityMedium},
		{"weekly market trend analysis", 4, model.SeverityLow}, // medium needs priority >= 5
		{"nothing notable happened", 10, model.SeverityLow},
	}
	for _, tt := range tests {
		if got := s.Severity(tt.text, tt.priority); got != tt.want {
			t.Errorf("Severity(%q, %d) = %s, want %s", tt.text, tt.priority, got, tt.want)
		}
	}
}

func TestExtractAssets_AliasNormalization(t *testing.T) {
	s := New(DefaultLexicon())

	assets := s.ExtractAssets("Ethereum and Solana outperform BTC")
	want := map[string]bool{"BTC": true, "ETH": true, "SOL": true}
	if len(assets) != len(want) {
		t.Fatalf("expected %d assets, got %v", len(want), assets)
	}
	for _, a := range assets {
		if !want[a] {
			t.Errorf("unexpected asset %s in %v", a, assets)
		}
	}

	// Full name and ticker for the same coin must not duplicate.
	assets = s.ExtractAssets("BITCOIN whales accumulate BTC")
	if len(assets) != 1 || assets[0] != "BTC" {
		t.Errorf("expected [BTC], got %v", assets)
	}

	if got := s.ExtractAssets("central bank raises interest rates"); len(got) != 0 {
		t.Errorf("expected no assets, got %v", got)
	}
}

func TestConfidence_Bonuses(t *testing.T) {
	s := New(DefaultLexicon())

	tests := []struct {
		name  string
		event model.MarketEvent
		want  int
	}{
		{
			name:  "baseline low severity",
			event: model.MarketEvent{Source: "SomeBlog", Severity: model.SeverityLow},
			want:  45,
		},
		{
			name:  "reliable source critical",
			event: model.MarketEvent{Source: "CoinDesk", Severity: model.SeverityCritical},
			want:  95,
		},
		{
			name: "all bonuses clamp at 100",
			event: model.MarketEvent{
				Source:         "Bloomberg",
				Severity:       model.SeverityCritical,
				Content:        strings.Repeat("x", 1100),
				AffectedAssets: []string{"BTC", "ETH"},
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		if got := s.Confidence(&tt.event); got != tt.want {
			t.Errorf("%s: Confidence = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestScore_SECLawsuitHeadline(t *testing.T) {
	s := New(DefaultLexicon())

	event := &model.MarketEvent{
		Source:         "CoinDesk",
		SourcePriority: 9,
		Title:          "SEC lawsuit against Binance triggers panic sell-off in BTC",
	}
	s.Score(event)

	if event.Severity != model.SeverityCritical {
		t.Errorf("severity = %s, want critical", event.Severity)
	}
	if event.Sentiment != model.SentimentBearish {
		t.Errorf("sentiment = %s, want bearish", event.Sentiment)
	}
	if len(event.AffectedAssets) != 1 || event.AffectedAssets[0] != "BTC" {
		t.Errorf("assets = %v, want [BTC]", event.AffectedAssets)
	}
	if event.Confidence < 90 {
		t.Errorf("confidence = %d, want >= 90", event.Confidence)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := New(DefaultLexicon())

	for i := 0; i < 10; i++ {
		event := &model.MarketEvent{
			Source:         "CoinTelegraph",
			SourcePriority: 8,
			Title:          "Ethereum upgrade launch boosts Solana and Cardano adoption",
			Content:        "Institutional growth continues across the market.",
		}
		s.Score(event)
		if event.AffectedAssets[0] != "ADA" && event.AffectedAssets[0] != "ETH" && event.AffectedAssets[0] != "SOL" {
			t.Fatalf("unexpected first asset %q", event.AffectedAssets[0])
		}
		first := event.AffectedAssets[0]

		again := &model.MarketEvent{
			Source:         "CoinTelegraph",
			SourcePriority: 8,
			Title:          "Ethereum upgrade launch boosts Solana and Cardano adoption",
			Content:        "Institutional growth continues across the market.",
		}
		s.Score(again)
		if again.AffectedAssets[0] != first || again.Confidence != event.Confidence {
			t.Fatal("scoring is not deterministic across invocations")
		}
	}
}
