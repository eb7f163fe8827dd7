// Package pipeline implements the collect -> dedup -> rank stages that
// turn raw forum posts into an ordered list of idea candidates.
package pipeline

import (
	"time"

	"github.com/kentaogata/idea-digest/internal/fetcher"
)

// Candidate is a post that survived the keyword and recency filters.
type Candidate struct {
	ID              string
	Title           string
	Body            string
	Author          string
	URL             string
	Upvotes         int
	Comments        int
	CreatedAt       time.Time
	SourceName      string
	SourceWeight    float64
	MatchedKeywords []string
}

// ScoredCandidate pairs a Candidate with its relevance score in [0,1].
// The score is computed once and only used for ordering.
type ScoredCandidate struct {
	Candidate
	Score float64
}

func newCandidate(p fetcher.Post, src fetcher.Source, matched []string) Candidate {
	return Candidate{
		ID:              p.ID,
		Title:           p.Title,
		Body:            p.Body,
		Author:          p.Author,
		URL:             p.URL,
		Upvotes:         p.Upvotes,
		Comments:        p.Comments,
		CreatedAt:       p.CreatedAt,
		SourceName:      src.Name,
		SourceWeight:    src.Weight,
		MatchedKeywords: matched,
	}
}
