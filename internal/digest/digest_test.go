package digest

import (
	"strings"
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestFilterExcludesOldArticles(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)
	keywords := []string{"bitcoin", "dubai"}

	articles := []Article{
		{Title: "Bitcoin hits new high in Dubai markets", Published: timePtr(now.Add(-30 * time.Hour))},
	}

	got := Filter(articles, cutoff, keywords)
	if len(got) != 0 {
		t.Errorf("expected old article excluded despite keyword match, got %d articles", len(got))
	}
}

func TestFilterIncludesRecentKeywordMatch(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)
	keywords := []string{"bitcoin", "dubai"}

	articles := []Article{
		{Title: "Bitcoin hits new high in Dubai markets", Published: timePtr(now.Add(-2 * time.Hour))},
	}

	got := Filter(articles, cutoff, keywords)
	if len(got) != 1 {
		t.Fatalf("expected fresh keyword match included, got %d articles", len(got))
	}
	if got[0].Title != articles[0].Title {
		t.Errorf("unexpected article: %q", got[0].Title)
	}
}

func TestFilterExcludesWithoutKeyword(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	articles := []Article{
		{Title: "Local football results", Summary: "The match ended 2-1", Published: timePtr(now.Add(-1 * time.Hour))},
	}

	got := Filter(articles, cutoff, []string{"banking", "crypto"})
	if len(got) != 0 {
		t.Errorf("expected article without keyword excluded despite recency, got %d", len(got))
	}
}

func TestFilterExcludesMissingTimestamp(t *testing.T) {
	cutoff := time.Now().Add(-24 * time.Hour)

	articles := []Article{
		{Title: "Crypto exchange licensed in Germany", Published: nil},
	}

	got := Filter(articles, cutoff, []string{"crypto"})
	if len(got) != 0 {
		t.Errorf("expected article without timestamp excluded, got %d", len(got))
	}
}

func TestFilterMatchesSummaryCaseInsensitive(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	articles := []Article{
		{
			Title:     "Central bank statement",
			Summary:   "<p>New rules for <b>FINTECH</b> startups announced.</p>",
			Published: timePtr(now.Add(-3 * time.Hour)),
		},
	}

	got := Filter(articles, cutoff, []string{"fintech"})
	if len(got) != 1 {
		t.Errorf("expected case-insensitive summary match, got %d articles", len(got))
	}
}

func TestFilterDoesNotMatchKeywordInsideMarkup(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	articles := []Article{
		{
			Title:     "Weather report",
			Summary:   `<a href="https://example.com/bitcoin-tracker">sunny skies ahead</a>`,
			Published: timePtr(now.Add(-1 * time.Hour)),
		},
	}

	got := Filter(articles, cutoff, []string{"bitcoin"})
	if len(got) != 0 {
		t.Errorf("keyword inside an href must not match, got %d articles", len(got))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	articles := []Article{
		{Title: "Crypto news one", Published: timePtr(now.Add(-5 * time.Hour))},
		{Title: "Irrelevant", Published: timePtr(now.Add(-4 * time.Hour))},
		{Title: "Crypto news two", Published: timePtr(now.Add(-3 * time.Hour))},
		{Title: "Crypto news three", Published: timePtr(now.Add(-2 * time.Hour))},
	}

	got := Filter(articles, cutoff, []string{"crypto"})
	want := []string{"Crypto news one", "Crypto news two", "Crypto news three"}
	if len(got) != len(want) {
		t.Fatalf("expected %d articles, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, time.Now().Add(-24*time.Hour), []string{"crypto"})
	if len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %d", len(got))
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		text     string
		keywords []string
		want     bool
	}{
		{"new payment rules in switzerland", []string{"payment"}, true},
		{"new payment rules in switzerland", []string{"PAYMENT"}, true},
		{"nothing relevant here", []string{"crypto", "banking"}, false},
		{"blockchain summit in riyadh", []string{"", " ", "blockchain"}, true},
		{"anything", nil, false},
	}
	for _, tt := range tests {
		if got := containsAny(tt.text, tt.keywords); got != tt.want {
			t.Errorf("containsAny(%q, %v) = %v, want %v", tt.text, tt.keywords, got, tt.want)
		}
	}
}

func TestSummaryText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text summary", "plain text summary"},
		{"<p>Bitcoin rallies</p>", "Bitcoin rallies"},
		{"<div>  spaced   out  </div>", "spaced out"},
		{"a &amp; b", "a & b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SummaryText(tt.input); got != tt.want {
			t.Errorf("SummaryText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSummaryTextKeepsLinkText(t *testing.T) {
	got := SummaryText(`<a href="https://example.com/x">read more</a>`)
	if got != "read more" {
		t.Errorf("got %q, want %q", got, "read more")
	}
	if strings.Contains(got, "example.com") {
		t.Errorf("URL leaked into extracted text: %q", got)
	}
}
