package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kentaogata/idea-digest/internal/fetcher"
)

// Collector fetches recent posts from every configured source and keeps
// those that are inside the recency window and match at least one keyword.
// A source that fails to fetch contributes zero candidates; it never
// aborts the run.
type Collector struct {
	sources  []fetcher.Source
	fetchers map[string]fetcher.Fetcher
	keywords []string
	window   time.Duration
	limit    int
	now      func() time.Time
}

func NewCollector(sources []fetcher.Source, fetchers map[string]fetcher.Fetcher, keywords []string, recencyDays, limitPerSource int) *Collector {
	return &Collector{
		sources:  sources,
		fetchers: fetchers,
		keywords: keywords,
		window:   time.Duration(recencyDays) * 24 * time.Hour,
		limit:    limitPerSource,
		now:      time.Now,
	}
}

// Collect runs one pass over all sources.
func (c *Collector) Collect(ctx context.Context) []Candidate {
	now := c.now()
	var all []Candidate

	for _, src := range c.sources {
		f, ok := c.fetchers[src.Type]
		if !ok {
			log.Printf("WARNING: no fetcher registered for source %s (type %s), skipping", src.Name, src.Type)
			continue
		}

		log.Printf("Fetching posts from %s", src.Name)
		posts, err := f.Fetch(ctx, src, c.limit)
		if err != nil {
			log.Printf("WARNING: fetch from %s failed: %v", src.Name, err)
			continue
		}

		kept := 0
		for _, p := range posts {
			if now.Sub(p.CreatedAt) > c.window {
				continue
			}
			matched := matchKeywords(p, c.keywords)
			if len(matched) == 0 {
				continue
			}
			all = append(all, newCandidate(p, src, matched))
			kept++
		}
		log.Printf("Source %s: %d posts fetched, %d kept", src.Name, len(posts), kept)
	}

	log.Printf("Found %d posts with keywords", len(all))
	return all
}

// matchKeywords returns the keywords that appear as case-insensitive
// substrings of the post's title or body, in configuration order.
func matchKeywords(p fetcher.Post, keywords []string) []string {
	title := strings.ToLower(p.Title)
	body := strings.ToLower(p.Body)

	var matched []string
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if strings.Contains(title, k) || strings.Contains(body, k) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Window returns the configured recency window.
func (c *Collector) Window() time.Duration {
	return c.window
}

// DescribeSources formats the source list for startup logging.
func DescribeSources(sources []fetcher.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = fmt.Sprintf("%s(%.1f)", s.Name, s.Weight)
	}
	return strings.Join(names, ", ")
}
