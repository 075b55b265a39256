package model

// SourceType distinguishes how a news source delivers items.
type SourceType string

const (
	SourceRSS       SourceType = "rss"
	SourceAPI       SourceType = "api"
	SourceWebSocket SourceType = "websocket"
)

// NewsSource describes one configured feed.
type NewsSource struct {
	Name     string     `yaml:"name"`
	URL      string     `yaml:"url"`
	Type     SourceType `yaml:"type"`
	Enabled  bool       `yaml:"enabled"`
	Priority int        `yaml:"priority"` // 1-10, higher = more trusted
}
