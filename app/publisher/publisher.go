package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/news-crawler/app/crawler"
	"github.com/lysyi3m/news-crawler/app/database"
)

type slackMessage struct {
	Text string `json:"text"`
}

// Publisher posts stories to a Slack incoming webhook
type Publisher struct {
	httpClient *http.Client
	webhookURL string
	timeout    time.Duration
	storyRepo  database.StoryRepository
}

func NewPublisher(httpClient *http.Client, webhookURL string, timeout time.Duration, storyRepo database.StoryRepository) *Publisher {
	return &Publisher{
		httpClient: httpClient,
		webhookURL: webhookURL,
		timeout:    timeout,
		storyRepo:  storyRepo,
	}
}

// Run posts the story and records it as seen once the webhook accepted it.
// A failed delivery is logged and reported as false; only a store error is returned.
func (p *Publisher) Run(ctx context.Context, story crawler.Story) (bool, error) {
	if err := p.post(ctx, FormatMessage(story)); err != nil {
		slog.Error("Slack posting error", "url", story.URL, "error", err)
		return false, nil
	}

	if err := p.storyRepo.UpsertStory(story.URL, story.Title, story.Summary); err != nil {
		return true, fmt.Errorf("failed to save posted story: %w", err)
	}

	slog.Info("Story posted", "url", story.URL, "title", story.Title)
	return true, nil
}

// FormatMessage renders the Slack mrkdwn text for a story
func FormatMessage(story crawler.Story) string {
	return fmt.Sprintf("*%s*\n\n%s\n\nRead more: %s", story.Title, story.Summary, story.URL)
}

func (p *Publisher) post(ctx context.Context, text string) error {
	payload, err := json.Marshal(slackMessage{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", p.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, bytes.TrimSpace(body))
	}

	return nil
}
