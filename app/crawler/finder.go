package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/news-crawler/app/database"
)

// ShuffleFunc has the signature of rand.Shuffle
type ShuffleFunc func(n int, swap func(i, j int))

type Finder struct {
	fetcher       PageFetcher
	linkCollector *LinkCollector
	extractor     *Extractor
	matcher       *Matcher
	storyRepo     database.StoryRepository
	shuffle       ShuffleFunc
}

func NewFinder(fetcher PageFetcher, linkCollector *LinkCollector, extractor *Extractor, matcher *Matcher, storyRepo database.StoryRepository) *Finder {
	return &Finder{
		fetcher:       fetcher,
		linkCollector: linkCollector,
		extractor:     extractor,
		matcher:       matcher,
		storyRepo:     storyRepo,
		shuffle:       rand.Shuffle,
	}
}

// WithShuffle replaces the scan order randomization, e.g. with a no-op in tests
func (f *Finder) WithShuffle(shuffle ShuffleFunc) *Finder {
	f.shuffle = shuffle
	return f
}

// Run returns the first unseen story matching the keywords, or nil when there is none.
// Fetch and parse failures only skip the affected resource or link; store errors abort the scan.
func (f *Finder) Run(ctx context.Context, resources []string) (*Story, error) {
	order := append([]string(nil), resources...)
	f.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, resource := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		story, err := f.scanResource(ctx, resource)
		if err != nil {
			return nil, err
		}
		if story != nil {
			return story, nil
		}
	}

	return nil, nil
}

func (f *Finder) scanResource(ctx context.Context, resource string) (*Story, error) {
	data, err := f.fetcher.Run(ctx, resource)
	if err != nil {
		slog.Error("Failed to fetch resource", "resource", resource, "error", err)
		return nil, nil
	}

	links, err := f.linkCollector.Run(data, resource)
	if err != nil {
		slog.Error("Failed to collect links", "resource", resource, "error", err)
		return nil, nil
	}

	f.shuffle(len(links), func(i, j int) { links[i], links[j] = links[j], links[i] })

	seenCount := 0
	excludedCount := 0
	unmatchedCount := 0
	fetchedCount := 0

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seen, err := f.storyRepo.StoryExists(link.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to check seen story: %w", err)
		}
		if seen {
			seenCount++
			continue
		}

		if isExcludedURL(link.URL) {
			excludedCount++
			continue
		}

		if !f.matcher.Run(link.Text) {
			unmatchedCount++
			continue
		}

		fetchedCount++
		story, ok := f.extractStory(ctx, link.URL)
		if !ok {
			continue
		}

		if f.matcher.Run(story.Title + " " + story.Summary) {
			slog.Info("Matching story found", "resource", resource, "url", story.URL, "title", story.Title)
			return story, nil
		}
	}

	slog.Info("Resource scanned",
		"resource", resource,
		"links", len(links),
		"seen", seenCount,
		"excluded", excludedCount,
		"unmatched", unmatchedCount,
		"fetched", fetchedCount)

	return nil, nil
}

func (f *Finder) extractStory(ctx context.Context, storyURL string) (*Story, bool) {
	data, err := f.fetcher.Run(ctx, storyURL)
	if err != nil {
		slog.Error("Error extracting story", "url", storyURL, "error", err)
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		slog.Error("Error extracting story", "url", storyURL, "error", err)
		return nil, false
	}

	title, summary := f.extractor.Run(doc, storyURL)

	return &Story{
		URL:     storyURL,
		Title:   title,
		Summary: summary,
	}, true
}
