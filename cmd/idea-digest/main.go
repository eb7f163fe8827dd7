package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/kentaogata/idea-digest/internal/config"
	"github.com/kentaogata/idea-digest/internal/fetcher"
	"github.com/kentaogata/idea-digest/internal/pipeline"
	"github.com/kentaogata/idea-digest/internal/publisher"
	"github.com/kentaogata/idea-digest/internal/runner"
	"github.com/kentaogata/idea-digest/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	// .env is optional; credentials may come from the real environment.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Build fetchers, one per source type
	fetchers := map[string]fetcher.Fetcher{
		"reddit": fetcher.NewRedditFetcher(),
		"rss":    fetcher.NewRSSFetcher(),
	}

	sources := make([]fetcher.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = fetcher.Source{Name: s.Name, Weight: s.Weight, Type: s.Type, FeedURL: s.FeedURL}
	}

	collector := pipeline.NewCollector(sources, fetchers, cfg.Keywords, cfg.RecencyDays, cfg.LimitPerSource)

	scorer := pipeline.NewScorer(
		pipeline.Weights{
			Upvotes:      cfg.Scoring.Weights.Upvotes,
			Comments:     cfg.Scoring.Weights.Comments,
			KeywordMatch: cfg.Scoring.Weights.KeywordMatch,
			Recency:      cfg.Scoring.Weights.Recency,
			Source:       cfg.Scoring.Weights.Source,
		},
		pipeline.Caps{
			Upvotes:  cfg.Scoring.Caps.Upvotes,
			Comments: cfg.Scoring.Caps.Comments,
			Keywords: cfg.Scoring.Caps.Keywords,
		},
		cfg.RecencyDays,
	)

	// Build summarizer
	var s summarizer.Summarizer
	switch cfg.Summarizer.Type {
	case "openai":
		s = summarizer.NewOpenAISummarizer(cfg.Summarizer.APIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	case "anthropic":
		s = summarizer.NewAnthropicSummarizer(cfg.Summarizer.APIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	default:
		log.Fatalf("Unknown summarizer type: %s", cfg.Summarizer.Type)
	}

	// Build publishers
	var pubs []publisher.Publisher
	var webPub *publisher.WebPublisher

	switch cfg.Publisher.Type {
	case "stdout":
		pubs = append(pubs, publisher.NewStdoutPublisher())
	case "email":
		pubs = append(pubs, publisher.NewEmailPublisher(
			cfg.Publisher.Email.SMTPHost,
			cfg.Publisher.Email.SMTPPort,
			cfg.Publisher.Email.Username,
			cfg.Publisher.Email.Password,
			cfg.Publisher.Email.From,
			cfg.Publisher.Email.To,
		))
	case "web":
		webPub = publisher.NewWebPublisher(cfg.Publisher.Web.Addr)
		pubs = append(pubs, webPub)
	case "discord":
		pubs = append(pubs, publisher.NewDiscordPublisher(cfg.Publisher.Discord.WebhookURL))
	default:
		log.Fatalf("Unknown publisher type: %s", cfg.Publisher.Type)
	}

	// Start web server if configured
	if webPub != nil {
		if err := webPub.Start(); err != nil {
			log.Fatalf("Failed to start web publisher: %v", err)
		}
	}

	log.Printf("Monitoring sources: %s", pipeline.DescribeSources(sources))

	r := runner.New(collector, scorer, cfg.TopN, s, pubs)

	// Single-run mode: run the pipeline once and exit
	if *once {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		log.Println("Running digest (once mode)...")
		if err := r.Run(ctx); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
		log.Println("Done")
		return
	}

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run immediately on startup if configured
	if cfg.RunOnStart {
		log.Println("Running initial digest...")
		if err := r.Run(ctx); err != nil {
			log.Printf("Initial run failed: %v", err)
		}
	}

	// Set up cron scheduler
	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Println("Cron triggered, running digest...")
		if err := r.Run(ctx); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Printf("Scheduled digest with cron expression: %s", cfg.Schedule)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	// Graceful shutdown
	cancel()
	c.Stop()

	if webPub != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := webPub.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown error: %v", err)
		}
	}

	log.Println("Shutdown complete")
}
