package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// excludedURLParts reject anchors, scripts, mail links and non-article files
var excludedURLParts = []string{"#", "javascript:", "mailto:", ".pdf", ".jpg", ".png"}

type LinkCollector struct {
	feedParser *gofeed.Parser
}

func NewLinkCollector() *LinkCollector {
	return &LinkCollector{
		feedParser: gofeed.NewParser(),
	}
}

// Run returns the outbound links of a resource in document order.
// Feeds (RSS, Atom, JSON) contribute their item links with item titles as text.
func (c *LinkCollector) Run(data []byte, resourceURL string) ([]Link, error) {
	base, err := url.Parse(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URL: %w", err)
	}

	if gofeed.DetectFeedType(bytes.NewReader(data)) != gofeed.FeedTypeUnknown {
		return c.collectFeedLinks(data, base)
	}

	return c.collectPageLinks(data, base)
}

func (c *LinkCollector) collectPageLinks(data []byte, base *url.URL) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		absolute, ok := resolveURL(base, href)
		if !ok {
			return
		}

		links = append(links, Link{
			URL:  absolute,
			Text: strings.TrimSpace(a.Text()),
		})
	})

	return links, nil
}

func (c *LinkCollector) collectFeedLinks(data []byte, base *url.URL) ([]Link, error) {
	feed, err := c.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	links := make([]Link, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		absolute, ok := resolveURL(base, item.Link)
		if !ok {
			continue
		}

		links = append(links, Link{
			URL:  absolute,
			Text: strings.TrimSpace(item.Title),
		})
	}

	return links, nil
}

// resolveURL resolves href against the resource URL, including protocol-relative links
func resolveURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	return base.ResolveReference(ref).String(), true
}

func isExcludedURL(link string) bool {
	lower := strings.ToLower(link)
	for _, part := range excludedURLParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
