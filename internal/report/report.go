// Package report assembles idea summaries and run statistics into the
// HTML document that gets delivered, plus a plain text alternative.
package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kentaogata/idea-digest/internal/summarizer"
)

// Stats are the run statistics shown at the top of the report.
type Stats struct {
	Ideas        int
	TotalUpvotes int
	Sources      int
}

// Report is one run's rendered output.
type Report struct {
	Date  time.Time
	Ideas []summarizer.IdeaSummary
	Stats Stats
}

// Build computes the statistics and wraps the ideas into a Report.
func Build(date time.Time, ideas []summarizer.IdeaSummary) *Report {
	stats := Stats{Ideas: len(ideas)}
	seen := make(map[string]bool)
	for _, idea := range ideas {
		stats.TotalUpvotes += idea.Upvotes
		if !seen[idea.SourceName] {
			seen[idea.SourceName] = true
			stats.Sources++
		}
	}
	return &Report{Date: date, Ideas: ideas, Stats: stats}
}

// Subject returns the email subject line for this report.
func (r *Report) Subject() string {
	return fmt.Sprintf("Daily iOS App Ideas — %s", r.Date.Format("January 2, 2006"))
}

func feasibilityColor(f summarizer.Feasibility) string {
	switch f {
	case summarizer.FeasibilityEasy:
		return "#4caf50"
	case summarizer.FeasibilityMedium:
		return "#ff9800"
	case summarizer.FeasibilityHard:
		return "#f44336"
	}
	return "#666"
}

func marketColor(m summarizer.MarketPotential) string {
	switch m {
	case summarizer.MarketSmall:
		return "#f44336"
	case summarizer.MarketMedium:
		return "#ff9800"
	case summarizer.MarketLarge:
		return "#4caf50"
	}
	return "#666"
}

// HTML renders the full report document.
func (r *Report) HTML() string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"><style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 12px; text-align: center; margin-bottom: 30px; }
.header h1 { margin: 0; font-size: 28px; font-weight: 600; }
.header p { margin: 10px 0 0 0; opacity: 0.9; font-size: 16px; }
.stats { background: #f8f9fa; padding: 15px; border-radius: 8px; margin-bottom: 20px; text-align: center; }
.stats-item { display: inline-block; margin: 0 20px; text-align: center; }
.stats-number { font-size: 24px; font-weight: 600; color: #667eea; }
.stats-label { font-size: 12px; color: #666; text-transform: uppercase; }
.idea-card { background: white; border-radius: 12px; padding: 25px; margin-bottom: 25px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); border-left: 4px solid #667eea; }
.idea-title { font-size: 20px; font-weight: 600; color: #2c3e50; margin: 0 0 10px 0; }
.idea-meta { background: #e3f2fd; display: inline-block; padding: 8px 12px; border-radius: 20px; font-size: 12px; color: #1976d2; margin-bottom: 15px; }
.idea-section { margin-bottom: 15px; }
.idea-section h4 { color: #667eea; margin: 0 0 8px 0; font-size: 14px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.5px; }
.idea-section p { margin: 0; color: #555; }
.badge { display: inline-block; color: white; padding: 4px 8px; border-radius: 4px; font-size: 12px; margin-right: 10px; }
.source-link { display: inline-block; background: #ff4500; color: white; padding: 8px 16px; text-decoration: none; border-radius: 6px; font-size: 14px; font-weight: 500; margin-top: 15px; }
.footer { text-align: center; margin-top: 40px; padding: 20px; color: #666; font-size: 14px; border-top: 1px solid #eee; }
</style></head><body>`)

	sb.WriteString(`<div class="header"><h1>Daily iOS App Ideas</h1>`)
	sb.WriteString(fmt.Sprintf("<p>%s</p></div>", r.Date.Format("January 2, 2006")))

	sb.WriteString(`<div class="stats">`)
	writeStat(&sb, r.Stats.Ideas, "Ideas Found")
	writeStat(&sb, r.Stats.TotalUpvotes, "Total Upvotes")
	writeStat(&sb, r.Stats.Sources, "Sources")
	sb.WriteString(`</div>`)

	for i, idea := range r.Ideas {
		sb.WriteString(`<div class="idea-card">`)
		sb.WriteString(fmt.Sprintf(`<h2 class="idea-title">%d. %s</h2>`, i+1, html.EscapeString(idea.Title)))
		sb.WriteString(fmt.Sprintf(`<div class="idea-meta">%s &bull; %d upvotes &bull; %d comments</div>`,
			html.EscapeString(idea.SourceName), idea.Upvotes, idea.Comments))

		writeSection(&sb, "Problem", idea.Problem)
		writeSection(&sb, "Solution", idea.Solution)
		writeSection(&sb, "Target Audience", idea.TargetAudience)
		if len(idea.UniqueFeatures) > 0 {
			sb.WriteString(`<div class="idea-section"><h4>Unique Features</h4><ul>`)
			for _, f := range idea.UniqueFeatures {
				sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(f)))
			}
			sb.WriteString("</ul></div>")
		}
		writeSection(&sb, "Monetization", idea.Monetization)

		sb.WriteString(fmt.Sprintf(`<div><span class="badge" style="background: %s;">Difficulty: %s</span>`,
			feasibilityColor(idea.Feasibility), idea.Feasibility))
		sb.WriteString(fmt.Sprintf(`<span class="badge" style="background: %s;">Market: %s</span></div>`,
			marketColor(idea.MarketPotential), idea.MarketPotential))

		sb.WriteString(fmt.Sprintf(`<a href="%s" class="source-link" target="_blank">View Original Post</a>`,
			html.EscapeString(idea.URL)))
		sb.WriteString("</div>")
	}

	sb.WriteString(`<div class="footer"><p>Generated automatically from monitored forums.</p></div>`)
	sb.WriteString("</body></html>")
	return sb.String()
}

func writeStat(sb *strings.Builder, n int, label string) {
	sb.WriteString(fmt.Sprintf(`<div class="stats-item"><div class="stats-number">%d</div><div class="stats-label">%s</div></div>`, n, label))
}

func writeSection(sb *strings.Builder, heading, text string) {
	sb.WriteString(fmt.Sprintf(`<div class="idea-section"><h4>%s</h4><p>%s</p></div>`, heading, html.EscapeString(text)))
}

// PlainText renders the text/plain alternative for mail clients that do
// not display HTML.
func (r *Report) PlainText() string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Daily iOS App Ideas — %s\n", r.Date.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("%d ideas | %d total upvotes | %d sources\n", r.Stats.Ideas, r.Stats.TotalUpvotes, r.Stats.Sources))
	sb.WriteString(strings.Repeat("=", 72) + "\n\n")

	for i, idea := range r.Ideas {
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, idea.Title))
		sb.WriteString(fmt.Sprintf("   %s | %d upvotes | %d comments\n\n", idea.SourceName, idea.Upvotes, idea.Comments))
		sb.WriteString(fmt.Sprintf("   Problem: %s\n", idea.Problem))
		sb.WriteString(fmt.Sprintf("   Solution: %s\n", idea.Solution))
		sb.WriteString(fmt.Sprintf("   Audience: %s\n", idea.TargetAudience))
		if len(idea.UniqueFeatures) > 0 {
			sb.WriteString("   Features:\n")
			for _, f := range idea.UniqueFeatures {
				sb.WriteString(fmt.Sprintf("   - %s\n", f))
			}
		}
		sb.WriteString(fmt.Sprintf("   Monetization: %s\n", idea.Monetization))
		sb.WriteString(fmt.Sprintf("   Difficulty: %s | Market: %s\n", idea.Feasibility, idea.MarketPotential))
		sb.WriteString(fmt.Sprintf("   %s\n\n", idea.URL))
	}

	return sb.String()
}
