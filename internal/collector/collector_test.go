package collector

import (
	"errors"
	"testing"
	"time"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/scorer"
)

func testSource(name string, priority int, items []Item) *MockSource {
	return &MockSource{
		Source: model.NewsSource{
			Name:     name,
			Type:     model.SourceRSS,
			Enabled:  true,
			Priority: priority,
		},
		Items: items,
	}
}

func TestCheckAll_ScoresAndAttachesSignals(t *testing.T) {
	published := time.Now().Add(-10 * time.Minute)
	src := testSource("CoinDesk", 9, []Item{
		{
			Title:       "SEC lawsuit against Binance triggers panic sell-off in BTC",
			Content:     "Regulators filed suit against the exchange.",
			PublishedAt: published,
		},
	})

	c := NewCollector(scorer.New(scorer.DefaultLexicon()), []Source{src})
	events := c.CheckAll()

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.ID == "" {
		t.Error("expected generated event id")
	}
	if event.Sentiment != model.SentimentBearish || event.Severity != model.SeverityCritical {
		t.Errorf("unexpected classification: %s/%s", event.Sentiment, event.Severity)
	}
	if event.Signal == nil {
		t.Fatal("expected derived signal")
	}
	if event.Signal.Action != model.ActionSell || event.Signal.Urgency != model.UrgencyImmediate {
		t.Errorf("signal = %s/%s, want sell/immediate", event.Signal.Action, event.Signal.Urgency)
	}
}

func TestCheckAll_DedupesByCompositeKey(t *testing.T) {
	published := time.Now().Add(-time.Hour)
	items := []Item{{
		Title:       "Bitcoin ETF approval drives rally",
		Content:     "Institutional adoption grows.",
		PublishedAt: published,
	}}
	src := testSource("CoinDesk", 9, items)

	c := NewCollector(scorer.New(scorer.DefaultLexicon()), []Source{src})

	if got := len(c.CheckAll()); got != 1 {
		t.Fatalf("first check: expected 1 event, got %d", got)
	}
	// Same article, same composite key: the watermark is in the past but the
	// processed set must still reject it.
	c.lastCheck[src.Source.Name] = published.Add(-2 * time.Hour)
	if got := len(c.CheckAll()); got != 0 {
		t.Fatalf("second check: expected 0 events, got %d", got)
	}
}

func TestCheckAll_FiltersIrrelevantAndAssetless(t *testing.T) {
	now := time.Now()
	src := testSource("CoinDesk", 9, []Item{
		{Title: "Local election results announced", Content: "Politics only.", PublishedAt: now},
		{Title: "Crypto exchange hack rumors", Content: "No named coin anywhere.", PublishedAt: now},
	})

	c := NewCollector(scorer.New(scorer.DefaultLexicon()), []Source{src})
	if events := c.CheckAll(); len(events) != 0 {
		t.Fatalf("expected 0 events, got %d", len(events))
	}
}

func TestCheckAll_DisabledAndFailingSources(t *testing.T) {
	now := time.Now()
	disabled := testSource("Decrypt", 7, []Item{
		{Title: "Bitcoin BTC surges", Content: "rally", PublishedAt: now},
	})
	disabled.Source.Enabled = false

	failing := testSource("TheBlock", 8, nil)
	failing.Err = errors.New("connection refused")

	working := testSource("CoinTelegraph", 8, []Item{
		{Title: "Ethereum upgrade launch confirmed for ETH", Content: "adoption news", PublishedAt: now},
	})

	c := NewCollector(scorer.New(scorer.DefaultLexicon()), []Source{disabled, failing, working})
	events := c.CheckAll()
	if len(events) != 1 {
		t.Fatalf("expected 1 event from the working source, got %d", len(events))
	}
	if events[0].Source != "CoinTelegraph" {
		t.Errorf("event source = %s, want CoinTelegraph", events[0].Source)
	}
}

func TestCheckAll_NewestFirst(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	src := testSource("CoinDesk", 9, []Item{
		{Title: "Older Bitcoin BTC analysis", Content: "market trend", PublishedAt: base},
		{Title: "Newer Ethereum ETH rally", Content: "growth", PublishedAt: base.Add(30 * time.Minute)},
	})

	c := NewCollector(scorer.New(scorer.DefaultLexicon()), []Source{src})
	events := c.CheckAll()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Timestamp.After(events[1].Timestamp) {
		t.Error("events not sorted newest first")
	}
}
