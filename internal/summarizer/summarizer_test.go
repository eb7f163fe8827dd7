package summarizer

import (
	"errors"
	"testing"

	"github.com/kentaogata/idea-digest/internal/pipeline"
)

const validIdeaJSON = `{
  "problem": "Plant owners forget watering schedules.",
  "solution": "An app that tracks each plant and reminds at the right time.",
  "target_audience": "Urban plant owners.",
  "unique_features": ["Photo-based plant identification", "Adaptive schedules"],
  "monetization": "Freemium with premium plant library.",
  "feasibility": "Easy",
  "market_potential": "Medium"
}`

func sampleCandidate() pipeline.ScoredCandidate {
	return pipeline.ScoredCandidate{
		Candidate: pipeline.Candidate{
			ID:         "abc12",
			Title:      "I wish there was an app for my plants",
			Body:       "I keep killing my houseplants.",
			URL:        "https://reddit.com/r/AppIdeas/comments/abc12/",
			Upvotes:    42,
			Comments:   7,
			SourceName: "AppIdeas",
		},
		Score: 0.83,
	}
}

func TestParseIdeaValid(t *testing.T) {
	idea, err := parseIdea(validIdeaJSON, sampleCandidate())
	if err != nil {
		t.Fatalf("parseIdea returned error: %v", err)
	}

	if idea.Problem != "Plant owners forget watering schedules." {
		t.Errorf("Unexpected problem: %q", idea.Problem)
	}
	if idea.Feasibility != FeasibilityEasy {
		t.Errorf("Expected feasibility Easy, got %q", idea.Feasibility)
	}
	if idea.MarketPotential != MarketMedium {
		t.Errorf("Expected market Medium, got %q", idea.MarketPotential)
	}
	if len(idea.UniqueFeatures) != 2 {
		t.Errorf("Expected 2 features, got %d", len(idea.UniqueFeatures))
	}

	// Origin metadata carried through
	if idea.Title != "I wish there was an app for my plants" {
		t.Errorf("Unexpected title: %q", idea.Title)
	}
	if idea.Upvotes != 42 || idea.Comments != 7 {
		t.Errorf("Expected 42/7 engagement, got %d/%d", idea.Upvotes, idea.Comments)
	}
	if idea.SourceName != "AppIdeas" {
		t.Errorf("Unexpected source: %q", idea.SourceName)
	}
	if idea.Score != 0.83 {
		t.Errorf("Expected score carried through, got %v", idea.Score)
	}
}

func TestParseIdeaStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validIdeaJSON + "\n```"
	idea, err := parseIdea(fenced, sampleCandidate())
	if err != nil {
		t.Fatalf("parseIdea returned error: %v", err)
	}
	if idea.Solution == "" {
		t.Error("Expected solution to be populated")
	}
}

func TestParseIdeaNormalizesEnumCase(t *testing.T) {
	raw := `{
  "problem": "p", "solution": "s", "target_audience": "a",
  "monetization": "m", "feasibility": "hard", "market_potential": "LARGE"
}`
	idea, err := parseIdea(raw, sampleCandidate())
	if err != nil {
		t.Fatalf("parseIdea returned error: %v", err)
	}
	if idea.Feasibility != FeasibilityHard {
		t.Errorf("Expected Hard, got %q", idea.Feasibility)
	}
	if idea.MarketPotential != MarketLarge {
		t.Errorf("Expected Large, got %q", idea.MarketPotential)
	}
}

func TestParseIdeaMissingFields(t *testing.T) {
	raw := `{"problem": "p", "feasibility": "Easy", "market_potential": "Small"}`
	_, err := parseIdea(raw, sampleCandidate())
	if !errors.Is(err, ErrBadSummary) {
		t.Fatalf("Expected ErrBadSummary, got %v", err)
	}
}

func TestParseIdeaBadEnum(t *testing.T) {
	raw := `{
  "problem": "p", "solution": "s", "target_audience": "a",
  "monetization": "m", "feasibility": "Trivial", "market_potential": "Small"
}`
	_, err := parseIdea(raw, sampleCandidate())
	if !errors.Is(err, ErrBadSummary) {
		t.Fatalf("Expected ErrBadSummary for unknown feasibility, got %v", err)
	}
}

func TestParseIdeaInvalidJSON(t *testing.T) {
	if _, err := parseIdea("Sorry, I cannot help with that.", sampleCandidate()); err == nil {
		t.Fatal("Expected error for non-JSON response")
	}
}

func TestBuildPromptTruncatesBody(t *testing.T) {
	c := sampleCandidate()
	long := make([]byte, 3000)
	for i := range long {
		long[i] = 'x'
	}
	c.Body = string(long)

	prompt := buildPrompt(c)
	if len(prompt) > 2500 {
		t.Errorf("Expected body truncation to bound prompt size, got %d chars", len(prompt))
	}
}
