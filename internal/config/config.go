package config

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Schedule       string           `yaml:"schedule"`
	RunOnStart     bool             `yaml:"run_on_start"`
	RecencyDays    int              `yaml:"recency_days"`
	TopN           int              `yaml:"top_n"`
	LimitPerSource int              `yaml:"limit_per_source"`
	Keywords       []string         `yaml:"keywords"`
	Sources        []SourceConfig   `yaml:"sources"`
	Scoring        ScoringConfig    `yaml:"scoring"`
	Summarizer     SummarizerConfig `yaml:"summarizer"`
	Publisher      PublisherConfig  `yaml:"publisher"`
}

type SourceConfig struct {
	Name    string  `yaml:"name"`
	Weight  float64 `yaml:"weight"`
	Type    string  `yaml:"type"`
	FeedURL string  `yaml:"feed_url"`
}

type ScoringConfig struct {
	Weights WeightsConfig `yaml:"weights"`
	Caps    CapsConfig    `yaml:"caps"`
}

// WeightsConfig holds the five scoring weights. All five terms contribute
// and together they must sum to 1.0.
type WeightsConfig struct {
	Upvotes      float64 `yaml:"upvotes"`
	Comments     float64 `yaml:"comments"`
	KeywordMatch float64 `yaml:"keyword_match"`
	Recency      float64 `yaml:"recency"`
	Source       float64 `yaml:"source"`
}

// CapsConfig holds the saturation constants for the counting sub-scores.
type CapsConfig struct {
	Upvotes  int `yaml:"upvotes"`
	Comments int `yaml:"comments"`
	Keywords int `yaml:"keywords"`
}

type SummarizerConfig struct {
	Type      string `yaml:"type"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int    `yaml:"max_tokens"`
}

type PublisherConfig struct {
	Type    string        `yaml:"type"`
	Email   EmailConfig   `yaml:"email"`
	Web     WebConfig     `yaml:"web"`
	Discord DiscordConfig `yaml:"discord"`
}

type EmailConfig struct {
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// defaultSources lists the communities the job was originally tuned for,
// with their static relevance weights.
func defaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "AppIdeas", Weight: 1.0, Type: "reddit"},
		{Name: "SomebodyMakeThis", Weight: 0.9, Type: "reddit"},
		{Name: "Lightbulb", Weight: 0.8, Type: "reddit"},
		{Name: "iOSProgramming", Weight: 0.7, Type: "reddit"},
		{Name: "SwiftUI", Weight: 0.7, Type: "reddit"},
		{Name: "SideProject", Weight: 0.6, Type: "reddit"},
		{Name: "appdev", Weight: 0.6, Type: "reddit"},
		{Name: "entrepreneur", Weight: 0.5, Type: "reddit"},
		{Name: "startups", Weight: 0.5, Type: "reddit"},
		{Name: "mobile", Weight: 0.5, Type: "reddit"},
		{Name: "iPhone", Weight: 0.4, Type: "reddit"},
		{Name: "iPad", Weight: 0.4, Type: "reddit"},
	}
}

func defaultKeywords() []string {
	return []string{
		"app idea", "wish there was an app", "ios app", "side project",
		"build this", "someone should make", "app concept", "mobile app",
		"iphone app", "ipad app", "swift app", "swiftui app",
	}
}

func setDefaults(cfg *Config) {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 8 * * *"
	}
	if cfg.RecencyDays == 0 {
		cfg.RecencyDays = 3
	}
	if cfg.TopN == 0 {
		cfg.TopN = 5
	}
	if cfg.LimitPerSource == 0 {
		cfg.LimitPerSource = 25
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].Type == "" {
			cfg.Sources[i].Type = "reddit"
		}
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = defaultKeywords()
	}
	if (cfg.Scoring.Weights == WeightsConfig{}) {
		cfg.Scoring.Weights = WeightsConfig{
			Upvotes:      0.30,
			Comments:     0.20,
			KeywordMatch: 0.25,
			Recency:      0.15,
			Source:       0.10,
		}
	}
	if cfg.Scoring.Caps.Upvotes == 0 {
		cfg.Scoring.Caps.Upvotes = 10
	}
	if cfg.Scoring.Caps.Comments == 0 {
		cfg.Scoring.Caps.Comments = 5
	}
	if cfg.Scoring.Caps.Keywords == 0 {
		cfg.Scoring.Caps.Keywords = 3
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "openai"
	}
	if cfg.Summarizer.Model == "" {
		switch cfg.Summarizer.Type {
		case "anthropic":
			cfg.Summarizer.Model = "claude-sonnet-4-20250514"
		default:
			cfg.Summarizer.Model = "gpt-4o-mini"
		}
	}
	if cfg.Summarizer.MaxTokens == 0 {
		cfg.Summarizer.MaxTokens = 500
	}
	if cfg.Publisher.Type == "" {
		cfg.Publisher.Type = "stdout"
	}
	if cfg.Publisher.Web.Addr == "" {
		cfg.Publisher.Web.Addr = ":8080"
	}
	if cfg.Publisher.Email.SMTPPort == 0 {
		cfg.Publisher.Email.SMTPPort = 587
	}
}

func validate(cfg *Config) error {
	if cfg.RecencyDays <= 0 {
		return fmt.Errorf("config: recency_days must be positive, got %d", cfg.RecencyDays)
	}
	if cfg.TopN <= 0 {
		return fmt.Errorf("config: top_n must be positive, got %d", cfg.TopN)
	}
	if len(cfg.Keywords) == 0 {
		return fmt.Errorf("config: at least one keyword is required")
	}
	for _, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("config: every source needs a name")
		}
		if src.Weight < 0 || src.Weight > 1 {
			return fmt.Errorf("config: source %q weight %v out of range [0,1]", src.Name, src.Weight)
		}
		switch src.Type {
		case "reddit":
		case "rss":
			if src.FeedURL == "" {
				return fmt.Errorf("config: source %q is type rss but has no feed_url", src.Name)
			}
		default:
			return fmt.Errorf("config: source %q has unsupported type %q (supported: reddit, rss)", src.Name, src.Type)
		}
	}
	w := cfg.Scoring.Weights
	for name, v := range map[string]float64{
		"upvotes":       w.Upvotes,
		"comments":      w.Comments,
		"keyword_match": w.KeywordMatch,
		"recency":       w.Recency,
		"source":        w.Source,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: scoring weight %s=%v out of range [0,1]", name, v)
		}
	}
	sum := w.Upvotes + w.Comments + w.KeywordMatch + w.Recency + w.Source
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("config: scoring weights must sum to 1.0, got %v", sum)
	}
	switch cfg.Summarizer.Type {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("config: unsupported summarizer type %q (supported: openai, anthropic)", cfg.Summarizer.Type)
	}
	if cfg.Summarizer.APIKey == "" {
		return fmt.Errorf("config: summarizer.api_key is required (set OPENAI_API_KEY env var)")
	}
	switch cfg.Publisher.Type {
	case "stdout", "email", "web", "discord":
	default:
		return fmt.Errorf("config: unsupported publisher type %q (supported: stdout, email, web, discord)", cfg.Publisher.Type)
	}
	if cfg.Publisher.Type == "discord" {
		if cfg.Publisher.Discord.WebhookURL == "" {
			return fmt.Errorf("config: publisher.discord.webhook_url is required for discord publisher")
		}
	}
	if cfg.Publisher.Type == "email" {
		if cfg.Publisher.Email.SMTPHost == "" {
			return fmt.Errorf("config: publisher.email.smtp_host is required for email publisher")
		}
		if len(cfg.Publisher.Email.To) == 0 {
			return fmt.Errorf("config: publisher.email.to is required for email publisher")
		}
		if cfg.Publisher.Email.From == "" {
			return fmt.Errorf("config: publisher.email.from is required for email publisher")
		}
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
