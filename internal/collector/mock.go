package collector

import "CryptoSentinel/internal/model"

// MockSource returns fixed items for development and testing.
type MockSource struct {
	Source model.NewsSource
	Items  []Item
	Err    error
}

func (m *MockSource) Meta() model.NewsSource { return m.Source }

func (m *MockSource) Fetch(limit int) ([]Item, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Items) > limit {
		return m.Items[:limit], nil
	}
	return m.Items, nil
}
