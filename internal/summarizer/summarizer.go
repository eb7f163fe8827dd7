// Package summarizer turns a scored candidate into a structured app idea
// by calling an external text-generation API and parsing its JSON reply.
package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kentaogata/idea-digest/internal/pipeline"
)

// ErrBadSummary is returned when the model's reply cannot be parsed into
// the required structured fields.
var ErrBadSummary = errors.New("summarizer: response missing required fields")

// Feasibility is the technical difficulty rating of an idea.
type Feasibility string

const (
	FeasibilityEasy   Feasibility = "Easy"
	FeasibilityMedium Feasibility = "Medium"
	FeasibilityHard   Feasibility = "Hard"
)

// MarketPotential is the estimated market size of an idea.
type MarketPotential string

const (
	MarketSmall  MarketPotential = "Small"
	MarketMedium MarketPotential = "Medium"
	MarketLarge  MarketPotential = "Large"
)

// IdeaSummary is the structured description of one app idea, plus the
// originating post's metadata for display.
type IdeaSummary struct {
	Problem         string
	Solution        string
	TargetAudience  string
	UniqueFeatures  []string
	Monetization    string
	Feasibility     Feasibility
	MarketPotential MarketPotential

	// Origin metadata
	Title      string
	URL        string
	SourceName string
	Upvotes    int
	Comments   int
	Score      float64
}

// Summarizer generates an IdeaSummary for a single candidate. Failures
// are per-candidate; the caller skips the candidate and moves on.
type Summarizer interface {
	Summarize(ctx context.Context, c pipeline.ScoredCandidate) (*IdeaSummary, error)
}

const systemPrompt = "You are an expert iOS developer and product strategist. Always respond with valid JSON only."

const maxBodyChars = 1000

// buildPrompt renders the fixed instruction template for one candidate.
func buildPrompt(c pipeline.ScoredCandidate) string {
	body := c.Body
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars] + "..."
	}

	var sb strings.Builder
	sb.WriteString("You are a creative iOS developer assistant. Analyze this forum post and transform it into a compelling iOS app idea.\n\n")
	sb.WriteString("Post:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", c.Title))
	sb.WriteString(fmt.Sprintf("Content: %s\n", body))
	sb.WriteString(fmt.Sprintf("Source: %s\n", c.SourceName))
	sb.WriteString(fmt.Sprintf("Upvotes: %d\n\n", c.Upvotes))
	sb.WriteString(`Please provide a structured response in JSON format with these exact keys:
{
    "problem": "Clear problem statement (max 50 words)",
    "solution": "Core app concept and how it solves the problem (max 80 words)",
    "target_audience": "Who would use this app (max 30 words)",
    "unique_features": ["What makes this app unique or innovative, as a short list"],
    "monetization": "Potential revenue model (max 30 words)",
    "feasibility": "Technical difficulty rating (Easy/Medium/Hard)",
    "market_potential": "Market size estimate (Small/Medium/Large)"
}

Keep responses concise and focused on iOS development. Be creative but realistic.
Respond ONLY with valid JSON, no markdown fences or additional text.`)

	return sb.String()
}

// ideaJSON is the expected JSON structure from the LLM.
type ideaJSON struct {
	Problem         string   `json:"problem"`
	Solution        string   `json:"solution"`
	TargetAudience  string   `json:"target_audience"`
	UniqueFeatures  []string `json:"unique_features"`
	Monetization    string   `json:"monetization"`
	Feasibility     string   `json:"feasibility"`
	MarketPotential string   `json:"market_potential"`
}

// parseIdea validates and converts the model's reply. Markdown fences are
// stripped first since models add them despite instructions.
func parseIdea(raw string, c pipeline.ScoredCandidate) (*IdeaSummary, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var ij ideaJSON
	if err := json.Unmarshal([]byte(raw), &ij); err != nil {
		return nil, fmt.Errorf("summarizer: failed to parse LLM JSON: %w", err)
	}

	if ij.Problem == "" || ij.Solution == "" || ij.TargetAudience == "" || ij.Monetization == "" {
		return nil, fmt.Errorf("%w: problem/solution/target_audience/monetization must all be present", ErrBadSummary)
	}

	feas, err := parseFeasibility(ij.Feasibility)
	if err != nil {
		return nil, err
	}
	market, err := parseMarketPotential(ij.MarketPotential)
	if err != nil {
		return nil, err
	}

	return &IdeaSummary{
		Problem:         ij.Problem,
		Solution:        ij.Solution,
		TargetAudience:  ij.TargetAudience,
		UniqueFeatures:  ij.UniqueFeatures,
		Monetization:    ij.Monetization,
		Feasibility:     feas,
		MarketPotential: market,
		Title:           c.Title,
		URL:             c.URL,
		SourceName:      c.SourceName,
		Upvotes:         c.Upvotes,
		Comments:        c.Comments,
		Score:           c.Score,
	}, nil
}

func parseFeasibility(s string) (Feasibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return FeasibilityEasy, nil
	case "medium":
		return FeasibilityMedium, nil
	case "hard":
		return FeasibilityHard, nil
	default:
		return "", fmt.Errorf("%w: unknown feasibility %q", ErrBadSummary, s)
	}
}

func parseMarketPotential(s string) (MarketPotential, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return MarketSmall, nil
	case "medium":
		return MarketMedium, nil
	case "large":
		return MarketLarge, nil
	default:
		return "", fmt.Errorf("%w: unknown market potential %q", ErrBadSummary, s)
	}
}
