package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kentaogata/idea-digest/internal/pipeline"
	"github.com/kentaogata/idea-digest/internal/publisher"
	"github.com/kentaogata/idea-digest/internal/report"
	"github.com/kentaogata/idea-digest/internal/summarizer"
)

// ErrNoCandidates means the run found nothing to report on: every source
// came back empty, keyword-free, or stale.
var ErrNoCandidates = errors.New("runner: no candidates survived filtering")

// Collector produces the run's filtered candidates.
type Collector interface {
	Collect(ctx context.Context) []pipeline.Candidate
}

// Runner orchestrates the collect -> dedup -> rank -> summarize -> publish
// pipeline. Per-item failures (one source, one summary) are logged and
// skipped; only whole-run failures are returned.
type Runner struct {
	collector  Collector
	scorer     *pipeline.Scorer
	topN       int
	summarizer summarizer.Summarizer
	publishers []publisher.Publisher
	now        func() time.Time
}

func New(c Collector, s *pipeline.Scorer, topN int, sum summarizer.Summarizer, pubs []publisher.Publisher) *Runner {
	return &Runner{
		collector:  c,
		scorer:     s,
		topN:       topN,
		summarizer: sum,
		publishers: pubs,
		now:        time.Now,
	}
}

// Run executes the full pipeline once.
func (r *Runner) Run(ctx context.Context) error {
	log.Printf("Starting pipeline (top_n=%d)", r.topN)

	// Step 1: Collect candidates from all sources
	cands := r.collector.Collect(ctx)
	if len(cands) == 0 {
		return ErrNoCandidates
	}

	// Step 2: Deduplicate, then rank. Ranking happens in this strictly
	// sequential step so output order never depends on fetch order.
	cands = pipeline.Deduplicate(cands)
	ranked := r.scorer.Rank(cands)
	log.Printf("%d candidates after dedup", len(ranked))

	top := ranked
	if len(top) > r.topN {
		top = top[:r.topN]
	}

	// Step 3: Summarize the top candidates, skipping per-item failures
	log.Println("Generating idea summaries...")
	ideas := make([]summarizer.IdeaSummary, 0, len(top))
	for _, sc := range top {
		idea, err := r.summarizer.Summarize(ctx, sc)
		if err != nil {
			log.Printf("WARNING: summary for post %s failed: %v", sc.ID, err)
			continue
		}
		ideas = append(ideas, *idea)
	}
	if len(ideas) == 0 {
		return fmt.Errorf("runner: all %d summarizations failed", len(top))
	}
	log.Printf("Generated %d idea summaries", len(ideas))

	// Step 4: Build the report and publish. Continue with other
	// publishers even if one fails.
	rep := report.Build(r.now(), ideas)

	var publishErrors []error
	for _, pub := range r.publishers {
		log.Printf("Publishing via %T...", pub)
		if err := pub.Publish(ctx, rep); err != nil {
			publishError := fmt.Errorf("publish via %T failed: %w", pub, err)
			publishErrors = append(publishErrors, publishError)
			log.Printf("WARNING: %v", publishError)
		} else {
			log.Printf("Successfully published via %T", pub)
		}
	}

	if len(publishErrors) == len(r.publishers) && len(r.publishers) > 0 {
		return fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}

	if len(publishErrors) > 0 {
		log.Printf("Pipeline completed with %d publisher failures out of %d publishers", len(publishErrors), len(r.publishers))
	} else {
		log.Println("Pipeline completed successfully")
	}

	return nil
}
