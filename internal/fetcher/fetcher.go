package fetcher

import (
	"context"
	"time"
)

// Source is one monitored community with its static relevance weight.
type Source struct {
	Name    string
	Weight  float64
	Type    string
	FeedURL string
}

// Post is a raw item returned by a source, before any filtering.
type Post struct {
	ID        string
	Title     string
	Body      string
	Author    string
	URL       string
	Upvotes   int
	Comments  int
	CreatedAt time.Time
}

// Fetcher retrieves recent posts from a single source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source, limit int) ([]Post, error)
}
