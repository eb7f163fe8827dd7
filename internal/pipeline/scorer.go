package pipeline

import (
	"sort"
	"time"
)

// Weights are the five scoring weights. They must sum to 1.0 so that a
// maxed-out candidate scores exactly 1.0; config validation enforces it.
type Weights struct {
	Upvotes      float64
	Comments     float64
	KeywordMatch float64
	Recency      float64
	Source       float64
}

// Caps are the saturation constants: counts at or above a cap contribute
// a full sub-score, so viral posts see diminishing returns.
type Caps struct {
	Upvotes  int
	Comments int
	Keywords int
}

// Scorer computes relevance scores. It is a pure function of its inputs;
// the clock is injectable so tests stay deterministic.
type Scorer struct {
	Weights Weights
	Caps    Caps
	Window  time.Duration
	Now     func() time.Time
}

func NewScorer(w Weights, c Caps, recencyDays int) *Scorer {
	return &Scorer{
		Weights: w,
		Caps:    c,
		Window:  time.Duration(recencyDays) * 24 * time.Hour,
		Now:     time.Now,
	}
}

// Score computes the weighted relevance score for one candidate.
func (s *Scorer) Score(c Candidate) float64 {
	upvoteScore := ratio(c.Upvotes, s.Caps.Upvotes)
	commentScore := ratio(c.Comments, s.Caps.Comments)
	keywordScore := ratio(len(c.MatchedKeywords), s.Caps.Keywords)

	age := s.Now().Sub(c.CreatedAt)
	recencyScore := 1 - age.Seconds()/s.Window.Seconds()
	if recencyScore < 0 {
		recencyScore = 0
	}
	if recencyScore > 1 {
		recencyScore = 1
	}

	return s.Weights.Upvotes*upvoteScore +
		s.Weights.Comments*commentScore +
		s.Weights.KeywordMatch*keywordScore +
		s.Weights.Recency*recencyScore +
		s.Weights.Source*c.SourceWeight
}

// Rank scores every candidate and sorts descending. Ties break on
// upvotes descending, then created_at descending, so an identical input
// always produces an identical order.
func (s *Scorer) Rank(cands []Candidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(cands))
	for i, c := range cands {
		scored[i] = ScoredCandidate{Candidate: c, Score: s.Score(c)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Upvotes != scored[j].Upvotes {
			return scored[i].Upvotes > scored[j].Upvotes
		}
		return scored[i].CreatedAt.After(scored[j].CreatedAt)
	})

	return scored
}

// ratio clamps count/limit to [0,1].
func ratio(count, limit int) float64 {
	if count <= 0 || limit <= 0 {
		return 0
	}
	if count >= limit {
		return 1
	}
	return float64(count) / float64(limit)
}
