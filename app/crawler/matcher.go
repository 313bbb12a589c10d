package crawler

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher reports whether text contains any configured keyword.
// Matching is case-insensitive substring matching, not token matching.
type Matcher struct {
	keywords []string // case-folded
}

func NewMatcher(keywords []string) *Matcher {
	folder := cases.Fold()

	folded := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		// a blank keyword would match everything
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		folded = append(folded, folder.String(keyword))
	}

	return &Matcher{keywords: folded}
}

func (m *Matcher) Run(text string) bool {
	if len(m.keywords) == 0 || text == "" {
		return false
	}

	folded := cases.Fold().String(text)
	for _, keyword := range m.keywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}

	return false
}
