package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-crawler/app/cfg"
	"github.com/lysyi3m/news-crawler/app/crawler"
	"github.com/lysyi3m/news-crawler/app/database"
	"github.com/lysyi3m/news-crawler/app/publisher"
	"github.com/lysyi3m/news-crawler/app/tasks"
)

func main() {
	os.Exit(run())
}

func run() int {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if appCfg == nil {
		// Help was shown
		return 0
	}

	setupLogging(appCfg.Debug)

	slog.Debug("Starting news crawler", "version", appCfg.Version)

	crawlConfig, err := crawler.NewConfigLoader(appCfg.ConfigFile).Run()
	if err != nil {
		slog.Error("Failed to load crawler configuration", "file", appCfg.ConfigFile, "error", err)
		return 1
	}

	webhookURL := appCfg.WebhookURL
	if webhookURL == "" {
		webhookURL = crawlConfig.WebhookURL
	}
	if webhookURL == "" && !appCfg.DryRun {
		slog.Error("Webhook URL is required (set webhook_url, --webhook-url or SLACK_WEBHOOK_URL)")
		return 1
	}

	if len(crawlConfig.Keywords) == 0 {
		slog.Warn("No keywords configured, nothing can match")
	}

	timeout := time.Duration(crawlConfig.Settings.Timeout) * time.Second
	if appCfg.Timeout > 0 {
		timeout = time.Duration(appCfg.Timeout) * time.Second
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		return 1
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return 1
	}
	slog.Debug("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	storyRepo := database.NewStoryRepository(db)

	seenCount, err := storyRepo.GetStoryCount()
	if err != nil {
		slog.Error("Failed to read seen stories", "error", err)
		return 1
	}

	slog.Info("Configuration loaded",
		"keywords", len(crawlConfig.Keywords),
		"resources", len(crawlConfig.Resources),
		"seen_stories", seenCount,
		"timeout", timeout,
		"dry_run", appCfg.DryRun)

	httpClient := &http.Client{Timeout: timeout}

	finder := crawler.NewFinder(
		crawler.NewFetcher(httpClient, timeout, appCfg.UserAgent),
		crawler.NewLinkCollector(),
		crawler.NewExtractor(crawlConfig.Settings.ReadabilityFallback),
		crawler.NewMatcher(crawlConfig.Keywords),
		storyRepo,
	)
	storyPublisher := publisher.NewPublisher(httpClient, webhookURL, timeout, storyRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task := tasks.NewPostStoryTask(crawlConfig.Resources, finder, storyPublisher, appCfg.DryRun)
	if err := task.Execute(ctx); err != nil {
		slog.Error("Run failed", "error", err)
		return 1
	}

	result := task.Result
	switch {
	case result.Story == nil:
		fmt.Println("No matching stories found.")
	case appCfg.DryRun:
		fmt.Printf("Found: %s\n%s\n", result.Story.Title, publisher.FormatMessage(*result.Story))
	case result.Posted:
		fmt.Printf("Posted: %s\n", result.Story.Title)
	default:
		fmt.Printf("Failed to post: %s\n", result.Story.Title)
		return 1
	}

	return 0
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
