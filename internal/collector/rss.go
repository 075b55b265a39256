package collector

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"CryptoSentinel/internal/model"
)

// RSSSource implements Source over an RSS/Atom feed.
type RSSSource struct {
	meta   model.NewsSource
	parser *gofeed.Parser
}

// NewRSSSource creates an RSS source for the given feed configuration.
func NewRSSSource(meta model.NewsSource) *RSSSource {
	parser := gofeed.NewParser()
	parser.UserAgent = "CryptoSentinel/1.0"
	return &RSSSource{meta: meta, parser: parser}
}

func (s *RSSSource) Meta() model.NewsSource { return s.meta }

// Fetch parses the feed and returns up to limit most recent items. Items
// without a title or publish date are skipped.
func (s *RSSSource) Fetch(limit int) ([]Item, error) {
	feed, err := s.parser.ParseURL(s.meta.URL)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.meta.Name, err)
	}

	var items []Item
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		if entry.Title == "" {
			continue
		}
		published := pickPublished(entry)
		if published.IsZero() {
			continue
		}

		content := entry.Description
		if entry.Content != "" {
			content = entry.Content
		}
		if len(content) > 1000 {
			content = content[:1000]
		}

		items = append(items, Item{
			Title:       entry.Title,
			Content:     content,
			PublishedAt: published,
		})
	}
	return items, nil
}

func pickPublished(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return time.Time{}
}
