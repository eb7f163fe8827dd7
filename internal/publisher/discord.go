package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kentaogata/idea-digest/internal/report"
	"github.com/kentaogata/idea-digest/internal/retry"
)

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	URL         string              `json:"url,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordPublisher publishes reports to a Discord channel via webhook.
type DiscordPublisher struct {
	webhookURL  string
	client      *http.Client
	retryConfig retry.Config
}

// NewDiscordPublisher creates a new DiscordPublisher.
func NewDiscordPublisher(webhookURL string) *DiscordPublisher {
	return &DiscordPublisher{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		retryConfig: retry.Config{
			MaxRetries: 3,
			BaseDelay:  1 * time.Second,
		},
	}
}

// Publish sends the report to Discord as a series of rich embeds.
func (d *DiscordPublisher) Publish(ctx context.Context, rep *report.Report) error {
	embeds := d.buildEmbeds(rep)
	batches := batchEmbeds(embeds)

	for i, batch := range batches {
		err := retry.WithBackoff(ctx, d.retryConfig, func(ctx context.Context) error {
			return d.sendWebhook(ctx, batch)
		})

		if err != nil {
			return fmt.Errorf("discord: failed to send batch %d: %w", i+1, err)
		}

		// Delay between batches to avoid rate limits.
		if i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	return nil
}

// buildEmbeds creates the stats embed and one embed per idea.
func (d *DiscordPublisher) buildEmbeds(rep *report.Report) []discordEmbed {
	embeds := make([]discordEmbed, 0, len(rep.Ideas)+1)

	stats := discordEmbed{
		Title: "Daily iOS App Ideas",
		Description: fmt.Sprintf("%d ideas | %d total upvotes | %d sources",
			rep.Stats.Ideas, rep.Stats.TotalUpvotes, rep.Stats.Sources),
		Color:     0x5865F2, // Discord blurple
		Footer:    &discordEmbedFooter{Text: rep.Date.Format("2006-01-02")},
		Timestamp: rep.Date.Format(time.RFC3339),
	}
	embeds = append(embeds, stats)

	for i, idea := range rep.Ideas {
		e := discordEmbed{
			Title:       truncate(fmt.Sprintf("%d. %s", i+1, idea.Title), 256),
			URL:         idea.URL,
			Description: truncate(idea.Problem, 4096),
			Color:       0x5865F2,
			Fields: []discordEmbedField{
				{Name: "Solution", Value: truncate(idea.Solution, 1024)},
				{Name: "Audience", Value: truncate(idea.TargetAudience, 1024), Inline: true},
				{Name: "Monetization", Value: truncate(idea.Monetization, 1024), Inline: true},
			},
		}

		if len(idea.UniqueFeatures) > 0 {
			e.Fields = append(e.Fields, discordEmbedField{
				Name:  "Unique Features",
				Value: truncate(formatFeatures(idea.UniqueFeatures), 1024),
			})
		}

		e.Footer = &discordEmbedFooter{
			Text: truncate(fmt.Sprintf("%s | %d upvotes | Difficulty: %s | Market: %s",
				idea.SourceName, idea.Upvotes, idea.Feasibility, idea.MarketPotential), 2048),
		}

		embeds = append(embeds, e)
	}

	return embeds
}

// batchEmbeds splits embeds into batches respecting Discord limits:
// max 10 embeds per message, max 6000 total characters per message.
func batchEmbeds(embeds []discordEmbed) [][]discordEmbed {
	var batches [][]discordEmbed
	var current []discordEmbed
	currentChars := 0

	for _, e := range embeds {
		ec := embedCharCount(e)

		if len(current) > 0 && (len(current) >= 10 || currentChars+ec > 6000) {
			batches = append(batches, current)
			current = nil
			currentChars = 0
		}

		current = append(current, e)
		currentChars += ec
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

// sendWebhook posts a batch of embeds to the Discord webhook.
func (d *DiscordPublisher) sendWebhook(ctx context.Context, embeds []discordEmbed) error {
	payload := discordWebhookPayload{Embeds: embeds}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

// truncate shortens s to max characters, preferring a sentence boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := s[:max-1]
	if idx := strings.LastIndexAny(cut, ".!?"); idx > max/2 {
		return cut[:idx+1]
	}
	return cut + "…"
}

// formatFeatures formats features as a bulleted list.
func formatFeatures(features []string) string {
	var b strings.Builder
	for i, f := range features {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(f)
	}
	return b.String()
}

// embedCharCount returns the total character count of an embed for batching purposes.
func embedCharCount(e discordEmbed) int {
	n := len(e.Title) + len(e.Description)
	for _, f := range e.Fields {
		n += len(f.Name) + len(f.Value)
	}
	if e.Footer != nil {
		n += len(e.Footer.Text)
	}
	return n
}
