package indexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

const maxAutoKeywords = 10

var indexStopWords = map[string]struct{}{
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
	indexSpecialChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	indexMultiSpace   = regexp.MustCompile(`\s+`)

	// Keyword heuristics run on raw field text so casing survives.
	capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	technicalTerm   = regexp.MustCompile(`\b\w*[0-9]\w*\b|\b[A-Z]{2,}\b`)
)

// ExtractMetadata derives the searchable projection of a lead: cleaned
// text, per-field tokens, keywords, and the full token set.
func ExtractMetadata(lead domain.Lead) domain.LeadMetadata {
	companyText := cleanIndexText(lead.Company)
	descriptionText := cleanIndexText(lead.Description)
	industryText := cleanIndexText(lead.Industry)
	locationText := cleanIndexText(lead.Location)

	var keywords []string
	for _, kw := range lead.Keywords {
		if cleaned := cleanIndexText(kw); cleaned != "" {
			keywords = append(keywords, cleaned)
		}
	}
	keywords = append(keywords, autoKeywords(lead.Description)...)
	keywords = dedupe(keywords)

	searchableParts := []string{
		companyText,
		descriptionText,
		industryText,
		locationText,
		strings.Join(keywords, " "),
		cleanIndexText(lead.Contact),
		cleanIndexText(lead.Email),
		cleanIndexText(lead.Website),
	}
	var nonEmpty []string
	for _, part := range searchableParts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	searchableText := strings.Join(nonEmpty, " ")

	return domain.LeadMetadata{
		SearchableText: searchableText,
		CompanyTokens:  tokenize(companyText),
		IndustryTokens: tokenize(industryText),
		LocationTokens: tokenize(locationText),
		Keywords:       keywords,
		AllTokens:      tokenize(searchableText),
	}
}

// IndexTokens returns the full set of index entries for metadata: every
// token of length >= 2 plus compound industry/location keys.
func IndexTokens(meta domain.LeadMetadata) []string {
	set := map[string]struct{}{}
	for _, group := range [][]string{
		meta.AllTokens, meta.CompanyTokens, meta.IndustryTokens,
		meta.LocationTokens, meta.Keywords,
	} {
		for _, token := range group {
			if len([]rune(token)) >= 2 {
				set[token] = struct{}{}
			}
		}
	}

	if len(meta.IndustryTokens) > 0 {
		set["industry:"+meta.IndustryTokens[0]] = struct{}{}
	}
	if len(meta.LocationTokens) > 0 {
		set["location:"+meta.LocationTokens[0]] = struct{}{}
	}

	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// cleanIndexText lowercases, strips special characters keeping hyphens,
// and collapses whitespace.
func cleanIndexText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = indexSpecialChars.ReplaceAllString(text, " ")
	text = indexMultiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokenize splits cleaned text into deduped tokens, dropping stop words
// and single characters. Output order is sorted for determinism.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	set := map[string]struct{}{}
	for _, token := range strings.Fields(text) {
		if len([]rune(token)) < 2 {
			continue
		}
		if _, stop := indexStopWords[token]; stop {
			continue
		}
		set[token] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// autoKeywords extracts capitalized words, acronyms, and terms with
// digits from raw (uncleaned) text, capped at maxAutoKeywords.
func autoKeywords(raw string) []string {
	if raw == "" {
		return nil
	}

	candidates := capitalizedWord.FindAllString(raw, -1)
	candidates = append(candidates, technicalTerm.FindAllString(raw, -1)...)

	var keywords []string
	for _, word := range candidates {
		cleaned := cleanIndexText(word)
		if len([]rune(cleaned)) < 3 {
			continue
		}
		if _, stop := indexStopWords[cleaned]; stop {
			continue
		}
		keywords = append(keywords, cleaned)
	}

	keywords = dedupe(keywords)
	if len(keywords) > maxAutoKeywords {
		keywords = keywords[:maxAutoKeywords]
	}
	return keywords
}

func dedupe(values []string) []string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
