package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kentaogata/idea-digest/internal/retry"
)

// Reddit public JSON API structures

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Stickied    bool    `json:"stickied"`
}

// RedditFetcher fetches hot posts from a subreddit via Reddit's public
// JSON API. No authentication is needed for read-only listings.
type RedditFetcher struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	retryConfig retry.Config
}

func NewRedditFetcher() *RedditFetcher {
	return &RedditFetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		baseURL:     "https://www.reddit.com",
		userAgent:   "idea-digest/1.0",
		retryConfig: retry.DefaultConfig(),
	}
}

func (f *RedditFetcher) Fetch(ctx context.Context, src Source, limit int) ([]Post, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("raw_json", "1")

	reqURL := fmt.Sprintf("%s/r/%s/hot.json?%s", f.baseURL, url.PathEscape(src.Name), query.Encode())

	var listing redditListing
	err := retry.WithBackoff(ctx, f.retryConfig, func(ctx context.Context) error {
		return f.doGet(ctx, reqURL, &listing)
	})
	if err != nil {
		return nil, fmt.Errorf("reddit: r/%s: %w", src.Name, err)
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		if d.Stickied {
			continue
		}

		author := d.Author
		if author == "" {
			author = "[deleted]"
		}

		posts = append(posts, Post{
			ID:        d.ID,
			Title:     strings.TrimSpace(d.Title),
			Body:      strings.TrimSpace(d.SelfText),
			Author:    author,
			URL:       "https://reddit.com" + d.Permalink,
			Upvotes:   d.Score,
			Comments:  d.NumComments,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}

	return posts, nil
}

func (f *RedditFetcher) doGet(ctx context.Context, reqURL string, out *redditListing) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse listing JSON: %w", err)
	}

	return nil
}
