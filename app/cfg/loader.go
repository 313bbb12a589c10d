package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DBPath string `long:"db-path" env:"DB_PATH" default:"posted_stories.db" description:"SQLite file recording posted stories"`

	// Crawl configuration
	ConfigFile string `long:"config" env:"CRAWLER_CONFIG" default:"./crawler.yml" description:"YAML file with keywords, resources and webhook URL"`
	WebhookURL string `long:"webhook-url" env:"SLACK_WEBHOOK_URL" description:"Slack incoming webhook URL (overrides webhook_url from the config file)"`
	Timeout    int    `long:"timeout" env:"HTTP_TIMEOUT" description:"HTTP timeout in seconds (overrides settings.timeout from the config file)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	DryRun    bool   `long:"dry-run" env:"DRY_RUN" description:"Find a story and print it without posting or recording it"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

// parse reads args, or the process arguments when args is nil
func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be non-negative")
	}

	return &Cfg{
		DBPath:     raw.DBPath,
		ConfigFile: raw.ConfigFile,
		WebhookURL: raw.WebhookURL,
		Timeout:    raw.Timeout,
		UserAgent:  raw.UserAgent,
		DryRun:     raw.DryRun,
		Debug:      raw.Debug,
		Version:    GetVersion(),
	}, nil
}
