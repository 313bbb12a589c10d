package crawler

// Story is a candidate article. URL identifies it in the seen-story store.
type Story struct {
	URL     string
	Title   string
	Summary string
}

// Link is an outbound link discovered on a resource
type Link struct {
	URL  string // absolute, resolved against the resource URL
	Text string // trimmed anchor text, or the item title for feeds
}

// Configuration types

type Config struct {
	Keywords   []string       `yaml:"keywords"`
	Resources  []string       `yaml:"resources"`
	WebhookURL string         `yaml:"webhook_url"`
	Settings   ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Timeout             int  `yaml:"timeout"` // seconds
	ReadabilityFallback bool `yaml:"readability_fallback"`
}
