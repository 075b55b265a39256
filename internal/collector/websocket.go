package collector

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"CryptoSentinel/internal/model"
)

// WSSource implements Source over a streaming websocket feed. A background
// reader accumulates pushed articles into a buffer; Fetch drains the buffer,
// so the collector's polling loop works the same for streaming and polling
// sources.
type WSSource struct {
	meta model.NewsSource

	mu     sync.Mutex
	buffer []Item
}

// wsArticle is the expected shape of one pushed message.
type wsArticle struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt int64  `json:"published_at"` // unix seconds
}

// NewWSSource creates a websocket source. Start must be called before the
// source yields items.
func NewWSSource(meta model.NewsSource) *WSSource {
	return &WSSource{meta: meta}
}

func (s *WSSource) Meta() model.NewsSource { return s.meta }

// Start connects and reads pushed articles until ctx is cancelled,
// reconnecting with backoff on failures.
func (s *WSSource) Start(ctx context.Context) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.meta.URL, nil)
		if err != nil {
			log.Printf("[WARN] ws source %s: dial failed: %v, retrying in %v", s.meta.Name, err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
		log.Printf("[INFO] ws source %s connected", s.meta.Name)

		s.readLoop(ctx, conn)
		conn.Close()
	}
}

func (s *WSSource) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[WARN] ws source %s: read failed: %v", s.meta.Name, err)
			}
			return
		}

		var article wsArticle
		if err := json.Unmarshal(data, &article); err != nil {
			log.Printf("[WARN] ws source %s: decode message: %v", s.meta.Name, err)
			continue
		}
		if article.Title == "" || article.PublishedAt == 0 {
			continue
		}

		content := article.Content
		if len(content) > 1000 {
			content = content[:1000]
		}

		s.mu.Lock()
		s.buffer = append(s.buffer, Item{
			Title:       article.Title,
			Content:     content,
			PublishedAt: time.Unix(article.PublishedAt, 0),
		})
		s.mu.Unlock()
	}
}

// Fetch drains up to limit buffered items.
func (s *WSSource) Fetch(limit int) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.buffer)
	if n > limit {
		n = limit
	}
	items := make([]Item, n)
	copy(items, s.buffer[:n])
	s.buffer = s.buffer[n:]
	return items, nil
}
