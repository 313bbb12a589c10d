package database

// StoryRepository is the seen-story set. URLs are compared literally.
type StoryRepository interface {
	StoryExists(url string) (bool, error)
	UpsertStory(url, title, summary string) error
	GetStory(url string) (*Story, error)
	GetStoryCount() (int, error)
}
