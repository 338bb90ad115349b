// Package app wires the fetch, filter, render, send pipeline for one run.
package app

import (
	"context"
	"fmt"
	"time"

	"findigest/internal/config"
	"findigest/internal/digest"
	"findigest/internal/mail"
	"findigest/internal/metrics"
	"findigest/internal/rss"
	"findigest/internal/sanitize"
)

// Mailer sends one rendered digest. Satisfied by *mail.Sender.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Run executes a single digest run. A run that finds no matching articles is
// a success: it logs, skips the send and returns nil so the scheduler sees
// exit code 0 either way.
func Run(ctx context.Context, cfg *config.Config, mailer Mailer) error {
	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return fmt.Errorf("loading feeds config: %w", err)
	}

	articles := rss.FetchAllFeeds(ctx, feeds.Feeds, cfg.RequestTimeout)
	fmt.Printf("Collected %d articles\n", len(articles))

	cutoff := time.Now().Add(-cfg.MaxArticleAge)
	filtered := digest.Filter(articles, cutoff, feeds.Keywords)
	fmt.Printf("Relevant articles: %d\n", len(filtered))

	if len(filtered) == 0 {
		fmt.Println("No articles to send. Skipping email.")
		metrics.Global.SetLastRun()
		return nil
	}

	sender, err := sanitize.Address(cfg.SenderEmail)
	if err != nil {
		reportEnvelopeDiagnostics(cfg, "", "")
		return fmt.Errorf("sanitizing sender address: %w", err)
	}
	receiver, err := sanitize.Address(cfg.ReceiverEmail)
	if err != nil {
		reportEnvelopeDiagnostics(cfg, sender, "")
		return fmt.Errorf("sanitizing receiver address: %w", err)
	}

	msg := mail.Message{
		From:     sender,
		To:       receiver,
		Subject:  subjectLine(time.Now()),
		HTMLBody: digest.Render(filtered),
	}

	if err := mailer.Send(ctx, msg); err != nil {
		reportEnvelopeDiagnostics(cfg, sender, receiver)
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("sending digest: %w", err)
	}

	metrics.Global.IncrementEmailsSent()
	metrics.Global.SetLastRun()
	return nil
}

func subjectLine(now time.Time) string {
	return fmt.Sprintf("Daily Finance & Crypto Digest - %s", now.Format("2006-01-02"))
}

// reportEnvelopeDiagnostics dumps raw vs sanitized envelope values so an
// operator can spot the invisible character that broke the send. The
// credential value itself is never printed, only its suspicious runes.
func reportEnvelopeDiagnostics(cfg *config.Config, sender, receiver string) {
	fmt.Printf("Sender (raw):       %q\n", cfg.SenderEmail)
	fmt.Printf("Sender (sanitized): %q\n", sender)
	for _, d := range sanitize.Describe(cfg.SenderEmail) {
		fmt.Printf("  sender: %s\n", d)
	}

	fmt.Printf("Receiver (raw):       %q\n", cfg.ReceiverEmail)
	fmt.Printf("Receiver (sanitized): %q\n", receiver)
	for _, d := range sanitize.Describe(cfg.ReceiverEmail) {
		fmt.Printf("  receiver: %s\n", d)
	}

	if descr := sanitize.Describe(cfg.EmailPassword); len(descr) > 0 {
		fmt.Println("Credential contains unusual characters:")
		for _, d := range descr {
			fmt.Printf("  credential: %s\n", d)
		}
	}
}
