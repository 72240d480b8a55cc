package ranking

import (
	"fmt"
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

// Field weights for text relevance. Company matches count most.
var textFieldWeights = []struct {
	name   string
	weight float64
}{
	{"company", 0.4},
	{"description", 0.3},
	{"industry", 0.2},
	{"contact", 0.1},
}

// textScore accumulates per-field term and phrase matches, clamped to 1.0.
// Terms score 0.8x the field weight on a prefix match and 0.5x on a
// plain substring match; phrases score the full field weight.
func (s *Scorer) textScore(lead domain.Lead, parsed domain.ParsedQuery) (float64, []string) {
	if len(parsed.Terms) == 0 && len(parsed.Phrases) == 0 {
		return 0, nil
	}

	fields := map[string]string{
		"company":     lead.Company,
		"description": lead.Description,
		"industry":    lead.Industry,
		"contact":     lead.Contact,
	}

	var (
		score   float64
		reasons []string
	)

	for _, fw := range textFieldWeights {
		text := strings.ToLower(fields[fw.name])
		if text == "" {
			continue
		}

		for _, term := range parsed.Terms {
			if !strings.Contains(text, term) {
				continue
			}
			if strings.HasPrefix(text, term) {
				score += fw.weight * 0.8
			} else {
				score += fw.weight * 0.5
			}
			reasons = append(reasons, fmt.Sprintf("Term '%s' found in %s", term, fw.name))
		}

		for _, phrase := range parsed.Phrases {
			if strings.Contains(text, phrase) {
				score += fw.weight
				reasons = append(reasons, fmt.Sprintf("Phrase '%s' found in %s", phrase, fw.name))
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}
