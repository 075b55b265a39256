package collector

import (
	"time"

	"CryptoSentinel/internal/model"
)

// Item is one raw article delivered by a source, before scoring.
type Item struct {
	Title       string
	Content     string
	PublishedAt time.Time
}

// Source defines the interface for fetching raw news items. Implementations
// exist per delivery mechanism (rss, api, websocket); the collector treats
// them uniformly, so new source kinds never touch the scoring code.
type Source interface {
	Meta() model.NewsSource
	Fetch(limit int) ([]Item, error)
}
