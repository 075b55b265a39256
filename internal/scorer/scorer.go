package scorer

import (
	"sort"
	"strings"

	"CryptoSentinel/internal/model"
)

// Scorer classifies raw text into sentiment, severity, affected assets and
// a confidence score. It is a pure function of its inputs and the lexicon;
// safe for concurrent use.
type Scorer struct {
	lex Lexicon
}

// New creates a Scorer over the given lexicon.
func New(lex Lexicon) *Scorer {
	return &Scorer{lex: lex}
}

// Relevant reports whether the text mentions anything from the relevance
// vocabulary. Irrelevant items are dropped before scoring.
func (s *Scorer) Relevant(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range s.lex.Relevance {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Sentiment counts bullish vs bearish keyword occurrences; the strictly
// larger count wins, a tie is neutral.
func (s *Scorer) Sentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)

	bullish := 0
	for _, kw := range s.lex.Bullish {
		bullish += strings.Count(lower, kw)
	}
	bearish := 0
	for _, kw := range s.lex.Bearish {
		bearish += strings.Count(lower, kw)
	}

	switch {
	case bullish > bearish:
		return model.SentimentBullish
	case bearish > bullish:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

// Severity checks keyword membership against three ordered tiers. High and
// medium additionally require the source priority to meet a tier minimum
// (>=7 for high, >=5 for medium).
func (s *Scorer) Severity(text string, sourcePriority int) model.Severity {
	lower := strings.ToLower(text)

	if containsAny(lower, s.lex.Critical) {
		return model.SeverityCritical
	}
	if containsAny(lower, s.lex.High) && sourcePriority >= 7 {
		return model.SeverityHigh
	}
	if containsAny(lower, s.lex.Medium) && sourcePriority >= 5 {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// ExtractAssets scans for known tickers and full coin names
// (case-insensitive), normalizing aliases into a de-duplicated set. The
// caller discards events with an empty result.
func (s *Scorer) ExtractAssets(text string) []string {
	upper := strings.ToUpper(text)
	seen := make(map[string]bool)
	var assets []string

	add := func(ticker string) {
		if !seen[ticker] {
			seen[ticker] = true
			assets = append(assets, ticker)
		}
	}

	for _, sym := range s.lex.Tickers {
		if strings.Contains(upper, sym) {
			add(sym)
		}
	}
	// Alias names are walked in sorted order so the extracted set is stable.
	names := make([]string, 0, len(s.lex.Aliases))
	for name := range s.lex.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(upper, name) {
			add(s.lex.Aliases[name])
		}
	}
	return assets
}

// Confidence starts at 50 and adjusts for source reliability, severity,
// content depth and breadth of impact; clamped to [0,100].
func (s *Scorer) Confidence(event *model.MarketEvent) int {
	confidence := 50

	lowerSource := strings.ToLower(event.Source)
	for _, src := range s.lex.ReliableSources {
		if strings.Contains(lowerSource, src) {
			confidence += 20
			break
		}
	}

	switch event.Severity {
	case model.SeverityCritical:
		confidence += 25
	case model.SeverityHigh:
		confidence += 15
	case model.SeverityMedium:
		confidence += 5
	default:
		confidence -= 5
	}

	if len(event.Content) > 500 {
		confidence += 10
	}
	if len(event.Content) > 1000 {
		confidence += 5
	}

	if len(event.AffectedAssets) > 1 {
		confidence += 10
	}

	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// Score runs the full classification over one event in place: sentiment,
// severity, assets, then confidence. It does not attach a signal.
func (s *Scorer) Score(event *model.MarketEvent) {
	fullText := event.Title + " " + event.Content
	event.Sentiment = s.Sentiment(fullText)
	event.Severity = s.Severity(fullText, event.SourcePriority)
	event.AffectedAssets = s.ExtractAssets(fullText)
	event.Confidence = s.Confidence(event)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
