package config

import (
	"os"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config_test_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
recency_days: 2
top_n: 3
keywords: ["app idea"]
sources:
  - name: AppIdeas
    weight: 1.0
summarizer:
  api_key: test_api_key
publisher:
  type: stdout
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RecencyDays != 2 {
		t.Errorf("Expected recency_days 2, got %d", cfg.RecencyDays)
	}
	if cfg.TopN != 3 {
		t.Errorf("Expected top_n 3, got %d", cfg.TopN)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "AppIdeas" {
		t.Errorf("Unexpected sources: %v", cfg.Sources)
	}
	if cfg.Sources[0].Type != "reddit" {
		t.Errorf("Expected source type to default to reddit, got %q", cfg.Sources[0].Type)
	}
	if cfg.Publisher.Type != "stdout" {
		t.Errorf("Expected publisher type 'stdout', got %q", cfg.Publisher.Type)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
summarizer:
  api_key: test_api_key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Schedule != "0 8 * * *" {
		t.Errorf("Expected default schedule, got %q", cfg.Schedule)
	}
	if cfg.RecencyDays != 3 {
		t.Errorf("Expected default recency_days 3, got %d", cfg.RecencyDays)
	}
	if cfg.TopN != 5 {
		t.Errorf("Expected default top_n 5, got %d", cfg.TopN)
	}
	if cfg.LimitPerSource != 25 {
		t.Errorf("Expected default limit_per_source 25, got %d", cfg.LimitPerSource)
	}
	if len(cfg.Sources) != 12 {
		t.Errorf("Expected 12 default sources, got %d", len(cfg.Sources))
	}
	if len(cfg.Keywords) != 12 {
		t.Errorf("Expected 12 default keywords, got %d", len(cfg.Keywords))
	}
	w := cfg.Scoring.Weights
	if w.Upvotes != 0.30 || w.Comments != 0.20 || w.KeywordMatch != 0.25 || w.Recency != 0.15 || w.Source != 0.10 {
		t.Errorf("Unexpected default weights: %+v", w)
	}
	if cfg.Scoring.Caps.Upvotes != 10 || cfg.Scoring.Caps.Comments != 5 || cfg.Scoring.Caps.Keywords != 3 {
		t.Errorf("Unexpected default caps: %+v", cfg.Scoring.Caps)
	}
	if cfg.Summarizer.Type != "openai" || cfg.Summarizer.Model != "gpt-4o-mini" {
		t.Errorf("Unexpected summarizer defaults: %+v", cfg.Summarizer)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv("IDEA_DIGEST_TEST_KEY", "secret-from-env")
	defer os.Unsetenv("IDEA_DIGEST_TEST_KEY")

	path := writeTempConfig(t, `
summarizer:
  api_key: ${IDEA_DIGEST_TEST_KEY}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Summarizer.APIKey != "secret-from-env" {
		t.Errorf("Expected env-expanded api key, got %q", cfg.Summarizer.APIKey)
	}
}

func TestLoadConfigAnthropicDefaultModel(t *testing.T) {
	path := writeTempConfig(t, `
summarizer:
  type: anthropic
  api_key: test_api_key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Summarizer.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Expected anthropic default model, got %q", cfg.Summarizer.Model)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing api key",
			yaml: `
publisher:
  type: stdout
`,
			wantErr: "api_key",
		},
		{
			name: "weights do not sum to one",
			yaml: `
summarizer:
  api_key: k
scoring:
  weights:
    upvotes: 0.5
    comments: 0.5
    keyword_match: 0.5
    recency: 0.5
    source: 0.5
`,
			wantErr: "sum to 1.0",
		},
		{
			name: "weight out of range",
			yaml: `
summarizer:
  api_key: k
scoring:
  weights:
    upvotes: 1.5
    comments: -0.5
    keyword_match: 0.0
    recency: 0.0
    source: 0.0
`,
			wantErr: "out of range",
		},
		{
			name: "source weight out of range",
			yaml: `
summarizer:
  api_key: k
sources:
  - name: AppIdeas
    weight: 2.0
`,
			wantErr: "out of range",
		},
		{
			name: "rss source without feed url",
			yaml: `
summarizer:
  api_key: k
sources:
  - name: SomeFeed
    weight: 0.5
    type: rss
`,
			wantErr: "feed_url",
		},
		{
			name: "bad source type",
			yaml: `
summarizer:
  api_key: k
sources:
  - name: chan
    weight: 0.5
    type: telegram
`,
			wantErr: "unsupported type",
		},
		{
			name: "bad summarizer type",
			yaml: `
summarizer:
  type: markov
  api_key: k
`,
			wantErr: "unsupported summarizer type",
		},
		{
			name: "email publisher missing host",
			yaml: `
summarizer:
  api_key: k
publisher:
  type: email
  email:
    from: a@example.com
    to: [b@example.com]
`,
			wantErr: "smtp_host",
		},
		{
			name: "discord publisher missing webhook",
			yaml: `
summarizer:
  api_key: k
publisher:
  type: discord
`,
			wantErr: "webhook_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
