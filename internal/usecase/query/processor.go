// Package query parses raw search text into terms, quoted phrases, and
// implicit structured filters.
package query

import (
	"regexp"
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "up": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {},
	"among": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "can": {},
}

var (
	// Keep letters, digits, underscore, whitespace, quotes, and hyphens.
	specialChars = regexp.MustCompile(`[^\p{L}\p{N}_\s"-]`)
	multiSpace   = regexp.MustCompile(`\s+`)
	quotedPhrase = regexp.MustCompile(`"([^"]*)"`)
)

// Processor turns raw query text into a ParsedQuery. It is stateless
// and safe for concurrent use.
type Processor struct{}

// New creates a query processor.
func New() *Processor {
	return &Processor{}
}

// Parse extracts terms, quoted phrases, and implicit filters from raw
// query text. Everything is matched against the cleaned lowercase form.
func (p *Processor) Parse(raw string) domain.ParsedQuery {
	if strings.TrimSpace(raw) == "" {
		return domain.ParsedQuery{Filters: map[string]string{}}
	}

	clean := cleanText(raw)

	var phrases []string
	for _, m := range quotedPhrase.FindAllStringSubmatch(clean, -1) {
		if phrase := strings.TrimSpace(m[1]); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}

	withoutPhrases := quotedPhrase.ReplaceAllString(clean, " ")

	return domain.ParsedQuery{
		Terms:   extractTerms(withoutPhrases),
		Phrases: phrases,
		Filters: extractImplicitFilters(clean),
	}
}

// cleanText lowercases, strips special characters, and collapses
// whitespace. Quotes and hyphens survive so phrases and hyphenated
// terms stay intact.
func cleanText(text string) string {
	text = strings.ToLower(text)
	text = specialChars.ReplaceAllString(text, " ")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractTerms splits on whitespace, drops short tokens and stop words,
// and dedupes preserving first occurrence.
func extractTerms(text string) []string {
	var (
		terms []string
		seen  = map[string]struct{}{}
	)
	for _, term := range strings.Fields(text) {
		if len([]rune(term)) < 2 {
			continue
		}
		if _, stop := stopWords[term]; stop {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
