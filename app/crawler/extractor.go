package crawler

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const NoSummary = "No summary available"

const (
	minTitleLength   = 5   // exclusive
	minSummaryLength = 20  // exclusive
	maxSummaryLength = 300 // exclusive
)

// Selectors are tried in order; the first acceptable match wins.
var (
	titleSelectors = []string{
		"h1",
		".entry-title",
		"article h1",
		"title",
		".article-title",
		"#main-title",
	}

	summarySelectors = []string{
		".entry-content p",
		"article p",
		".article-body p",
		".content p",
		"#main-content p",
	}
)

type Extractor struct {
	readabilityFallback bool
}

func NewExtractor(readabilityFallback bool) *Extractor {
	return &Extractor{readabilityFallback: readabilityFallback}
}

// Run returns the title and summary of a story page. Neither is ever empty.
func (e *Extractor) Run(doc *goquery.Document, pageURL string) (string, string) {
	return e.extractTitle(doc, pageURL), e.extractSummary(doc, pageURL)
}

func (e *Extractor) extractTitle(doc *goquery.Document, pageURL string) string {
	for _, selector := range titleSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}

		text := strings.TrimSpace(elem.Text())
		if utf8.RuneCountInString(text) > minTitleLength {
			return text
		}
	}

	return fmt.Sprintf("Story from %s", pageURL)
}

func (e *Extractor) extractSummary(doc *goquery.Document, pageURL string) string {
	for _, selector := range summarySelectors {
		var summary string
		doc.Find(selector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := strings.TrimSpace(p.Text())
			if isSummaryLength(text) {
				summary = text
				return false
			}
			return true
		})

		if summary != "" {
			return summary
		}
	}

	if e.readabilityFallback {
		if excerpt := e.readabilityExcerpt(doc, pageURL); excerpt != "" {
			return excerpt
		}
	}

	return NoSummary
}

// readabilityExcerpt runs on a copy of the document; readability rewrites the DOM it is given.
func (e *Extractor) readabilityExcerpt(doc *goquery.Document, pageURL string) string {
	html, err := doc.Html()
	if err != nil {
		slog.Debug("Failed to render document for readability", "url", pageURL, "error", err)
		return ""
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		slog.Debug("Readability extraction failed", "url", pageURL, "error", err)
		return ""
	}

	excerpt := strings.TrimSpace(article.Excerpt)
	if !isSummaryLength(excerpt) {
		return ""
	}

	slog.Debug("Summary taken from readability excerpt", "url", pageURL)
	return excerpt
}

func isSummaryLength(text string) bool {
	n := utf8.RuneCountInString(text)
	return n > minSummaryLength && n < maxSummaryLength
}
