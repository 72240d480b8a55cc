package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

// highlights wraps query matches in <mark> tags for company,
// description, and industry. Matched text keeps its original casing.
// All terms are combined into one alternation and applied in a single
// pass, so overlapping terms never produce nested tags. Longer
// alternatives come first; the regexp engine picks the leftmost
// alternative that matches, so "software" wins over "soft".
func highlights(lead domain.Lead, parsed domain.ParsedQuery) map[string]string {
	terms := make([]string, 0, len(parsed.Terms)+len(parsed.Phrases))
	terms = append(terms, parsed.Phrases...)
	terms = append(terms, parsed.Terms...)
	if len(terms) == 0 {
		return nil
	}

	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	re, err := regexp.Compile("(?i)" + strings.Join(quoted, "|"))
	if err != nil {
		return nil
	}

	fields := map[string]string{
		"company":     lead.Company,
		"description": lead.Description,
		"industry":    lead.Industry,
	}

	out := map[string]string{}
	for name, value := range fields {
		if value == "" {
			continue
		}
		highlighted := re.ReplaceAllString(value, "<mark>${0}</mark>")
		if highlighted != value {
			out[name] = highlighted
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
