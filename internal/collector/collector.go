package collector

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/scorer"
	"CryptoSentinel/internal/strategy"
)

// maxItemsPerCheck caps how many items are pulled from one source per cycle.
const maxItemsPerCheck = 10

// Collector polls all configured sources, de-duplicates articles, and turns
// new relevant ones into scored market events with derived signals.
type Collector struct {
	Scorer  *scorer.Scorer
	sources []Source

	lastCheck map[string]time.Time
	processed map[string]bool
}

// NewCollector creates a Collector over the given sources.
func NewCollector(sc *scorer.Scorer, sources []Source) *Collector {
	return &Collector{
		Scorer:    sc,
		sources:   sources,
		lastCheck: make(map[string]time.Time),
		processed: make(map[string]bool),
	}
}

// CheckAll polls every enabled source and returns scored events, newest
// first. Source failures are logged and skipped; the cycle continues with
// the remaining sources.
func (c *Collector) CheckAll() []*model.MarketEvent {
	var events []*model.MarketEvent

	for _, src := range c.sources {
		meta := src.Meta()
		if !meta.Enabled {
			continue
		}

		items, err := src.Fetch(maxItemsPerCheck)
		if err != nil {
			log.Printf("[ERROR] fetch from %s: %v", meta.Name, err)
			continue
		}

		watermark := c.lastCheck[meta.Name]
		for _, item := range items {
			if event := c.process(meta, item, watermark); event != nil {
				events = append(events, event)
			}
		}
		c.lastCheck[meta.Name] = time.Now()
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events
}

// process scores one item, returning nil when it is stale, a duplicate,
// off-topic or touches no known asset.
func (c *Collector) process(meta model.NewsSource, item Item, watermark time.Time) *model.MarketEvent {
	if !item.PublishedAt.After(watermark) && !watermark.IsZero() {
		return nil
	}

	event := &model.MarketEvent{
		ID:             uuid.NewString(),
		Timestamp:      item.PublishedAt,
		Source:         meta.Name,
		SourcePriority: meta.Priority,
		Type:           model.EventNews,
		Title:          item.Title,
		Content:        item.Content,
	}

	key := event.DedupeKey()
	if c.processed[key] {
		return nil
	}

	if !c.Scorer.Relevant(item.Title + " " + item.Content) {
		return nil
	}

	c.Scorer.Score(event)
	if len(event.AffectedAssets) == 0 {
		// A signal-worthy event always names at least one asset.
		return nil
	}

	event.Signal = strategy.Evaluate(event)
	c.processed[key] = true

	log.Printf("[INFO] new event from %s: %q sentiment=%s severity=%s confidence=%d assets=%v",
		meta.Name, event.Title, event.Sentiment, event.Severity, event.Confidence, event.AffectedAssets)
	return event
}
