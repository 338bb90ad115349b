package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched    int64
	FeedsFailed     int64
	ArticlesSeen    int64
	ArticlesMatched int64
	EmailsSent      int64

	// Timings
	LastProcessingTime time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed++
}

func (m *Metrics) IncrementArticlesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSeen++
}

func (m *Metrics) IncrementArticlesMatched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesMatched++
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastProcessingTime = duration
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":           m.FeedsFetched,
		"feeds_failed":            m.FeedsFailed,
		"articles_seen":           m.ArticlesSeen,
		"articles_matched":        m.ArticlesMatched,
		"emails_sent":             m.EmailsSent,
		"last_processing_time_ms": m.LastProcessingTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
