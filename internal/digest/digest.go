// Package digest filters fetched articles and renders the HTML digest.
package digest

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"findigest/internal/logger"
	"findigest/internal/metrics"
)

// Article is a single feed entry considered for the digest.
type Article struct {
	Title     string
	Summary   string
	Link      string
	Source    string
	Published *time.Time
}

// Filter keeps articles published at or after cutoff whose title or summary
// mentions at least one keyword, case-insensitively. Input order is
// preserved. Articles without a parseable timestamp are dropped; feeds are
// inconsistent about dates and an undated entry cannot be proven fresh.
func Filter(articles []Article, cutoff time.Time, keywords []string) []Article {
	startTime := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(startTime))
	}()

	var out []Article
	for _, a := range articles {
		metrics.Global.IncrementArticlesSeen()

		if a.Published == nil {
			logger.Debug("skipping article without timestamp", "title", a.Title)
			continue
		}
		if a.Published.Before(cutoff) {
			continue
		}

		text := strings.ToLower(a.Title + " " + SummaryText(a.Summary))
		if !containsAny(text, keywords) {
			continue
		}

		metrics.Global.IncrementArticlesMatched()
		out = append(out, a)
	}
	return out
}

// containsAny reports whether the lower-cased text contains any keyword as a
// substring. Empty keywords are ignored.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// SummaryText extracts the plain text of a feed summary. Summaries are often
// HTML fragments; matching keywords against markup would let tag names and
// attribute values produce false hits.
func SummaryText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
