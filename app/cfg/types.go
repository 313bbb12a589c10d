package cfg

type Cfg struct {
	// Storage
	DBPath string

	// Crawl configuration
	ConfigFile string
	WebhookURL string
	Timeout    int // seconds

	// Application metadata
	UserAgent string
	DryRun    bool
	Debug     bool
	Version   string
}
