// Package rss loads the feeds configuration and fetches articles.
package rss

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"findigest/internal/digest"
	"findigest/internal/logger"
	"findigest/internal/metrics"
)

// FeedsConfig is the YAML config structure
// feeds:
//   - https://...
// keywords:
//   - banking
type FeedsConfig struct {
	Feeds    []string `yaml:"feeds"`
	Keywords []string `yaml:"keywords"`
}

// LoadFeeds reads the feed URL and keyword lists from a YAML file.
func LoadFeeds(path string) (*FeedsConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("%s lists no feeds", path)
	}
	if len(cfg.Keywords) == 0 {
		return nil, fmt.Errorf("%s lists no keywords", path)
	}
	return &cfg, nil
}

// FetchAllFeeds downloads and parses all feeds and returns the combined
// article list. A feed that fails to fetch or parse is logged and skipped so
// one broken source never aborts the run.
func FetchAllFeeds(ctx context.Context, urls []string, timeout time.Duration) []digest.Article {
	parser := gofeed.NewParser()
	var all []digest.Article
	successCount := 0

	for _, url := range urls {
		fmt.Printf("Fetching articles from %s...\n", url)

		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		feed, err := parser.ParseURLWithContext(url, fetchCtx)
		cancel()
		if err != nil {
			logger.Error("error fetching feed", "url", url, "error", err)
			metrics.Global.IncrementFeedsFailed()
			continue // log, but don't stop
		}

		source := feed.Title
		if source == "" {
			source = "Unknown Source"
		}
		for _, item := range feed.Items {
			all = append(all, articleFromItem(item, source))
		}

		successCount++
		metrics.Global.IncrementFeedsFetched()
		logger.Debug("loaded feed", "url", url, "items", len(feed.Items))
	}

	logger.Info("processed RSS feeds", "ok", successCount, "total", len(urls))
	return all
}

func articleFromItem(item *gofeed.Item, source string) digest.Article {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	link := item.Link
	if link == "" {
		link = "No link available"
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}

	return digest.Article{
		Title:     item.Title,
		Summary:   summary,
		Link:      link,
		Source:    source,
		Published: published,
	}
}
