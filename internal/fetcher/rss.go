package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSFetcher fetches recent entries from an RSS or Atom feed. Feeds carry
// no engagement counters, so upvotes and comments stay zero and the
// source weight does the ranking work for these posts.
type RSSFetcher struct {
	parser *gofeed.Parser
}

func NewRSSFetcher() *RSSFetcher {
	p := gofeed.NewParser()
	p.UserAgent = "idea-digest/1.0"
	return &RSSFetcher{parser: p}
}

func (f *RSSFetcher) Fetch(ctx context.Context, src Source, limit int) ([]Post, error) {
	feed, err := f.parser.ParseURLWithContext(src.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss: %s: %w", src.Name, err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	posts := make([]Post, 0, len(items))
	for _, item := range items {
		var created time.Time
		switch {
		case item.PublishedParsed != nil:
			created = item.PublishedParsed.UTC()
		case item.UpdatedParsed != nil:
			created = item.UpdatedParsed.UTC()
		default:
			// Undated entries cannot pass the recency filter anyway.
			continue
		}

		id := item.GUID
		if id == "" {
			id = item.Link
		}

		var author string
		if item.Author != nil {
			author = item.Author.Name
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		posts = append(posts, Post{
			ID:        id,
			Title:     strings.TrimSpace(item.Title),
			Body:      strings.TrimSpace(body),
			Author:    author,
			URL:       item.Link,
			CreatedAt: created,
		})
	}

	return posts, nil
}
