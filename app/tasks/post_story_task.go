package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/news-crawler/app/crawler"
)

type StoryFinder interface {
	Run(ctx context.Context, resources []string) (*crawler.Story, error)
}

type StoryPublisher interface {
	Run(ctx context.Context, story crawler.Story) (bool, error)
}

// PostStoryResult is nil Story when nothing matched; Posted is false for dry runs and failed deliveries
type PostStoryResult struct {
	Story  *crawler.Story
	Posted bool
}

type PostStoryTask struct {
	Task
	resources []string
	finder    StoryFinder
	publisher StoryPublisher
	dryRun    bool

	Result PostStoryResult
}

var _ TaskInterface = (*PostStoryTask)(nil)

func NewPostStoryTask(resources []string, finder StoryFinder, publisher StoryPublisher, dryRun bool) *PostStoryTask {
	return &PostStoryTask{
		Task:      NewTask(TaskTypePostStory),
		resources: resources,
		finder:    finder,
		publisher: publisher,
		dryRun:    dryRun,
	}
}

func (t *PostStoryTask) Execute(ctx context.Context) error {
	t.Start()
	t.Result = PostStoryResult{}

	story, err := t.finder.Run(ctx, t.resources)
	if err != nil {
		return fmt.Errorf("failed to find story: %w", err)
	}

	t.Result.Story = story

	if story != nil && !t.dryRun {
		posted, err := t.publisher.Run(ctx, *story)
		t.Result.Posted = posted
		if err != nil {
			return fmt.Errorf("failed to publish story: %w", err)
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"id", t.GetID(),
		"duration", t.GetDuration(),
		"resources", len(t.resources),
		"found", story != nil,
		"posted", t.Result.Posted,
		"dry_run", t.dryRun)

	return nil
}
