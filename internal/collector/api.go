package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CryptoSentinel/internal/model"
)

// APISource implements Source over a JSON news endpoint. The endpoint is
// expected to return an array of {title, content, published_at} objects,
// newest first.
type APISource struct {
	meta   model.NewsSource
	apiKey string
	client *http.Client
}

// NewAPISource creates an API source with optional bearer auth and proxy
// support.
func NewAPISource(meta model.NewsSource, apiKey, proxyURL string) *APISource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &APISource{
		meta:   meta,
		apiKey: apiKey,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *APISource) Meta() model.NewsSource { return s.meta }

// apiArticle is the expected JSON shape from the news API.
type apiArticle struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt int64  `json:"published_at"` // unix seconds
}

func (s *APISource) Fetch(limit int) ([]Item, error) {
	endpoint := fmt.Sprintf("%s?limit=%d", s.meta.URL, limit)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch articles: status %d, body: %s", resp.StatusCode, string(body))
	}

	var articles []apiArticle
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	items := make([]Item, 0, len(articles))
	for _, a := range articles {
		if len(items) >= limit {
			break
		}
		if a.Title == "" || a.PublishedAt == 0 {
			continue
		}
		content := a.Content
		if len(content) > 1000 {
			content = content[:1000]
		}
		items = append(items, Item{
			Title:       a.Title,
			Content:     content,
			PublishedAt: time.Unix(a.PublishedAt, 0),
		})
	}
	return items, nil
}
