package ranking

import (
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

// qualityScore is the fraction of core fields that are filled.
func (s *Scorer) qualityScore(lead domain.Lead) (float64, []string) {
	fields := []string{
		lead.Company,
		lead.Contact,
		lead.Email,
		lead.Phone,
		lead.Industry,
		lead.Location,
		lead.Description,
	}

	filled := 0
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	score := float64(filled) / float64(len(fields))

	switch {
	case score > 0.8:
		return score, []string{"High data completeness"}
	case score > 0.5:
		return score, []string{"Good data completeness"}
	default:
		return score, nil
	}
}

// freshnessScore decays with the lead's age in whole days. Leads with
// no creation time score zero.
func (s *Scorer) freshnessScore(lead domain.Lead) (float64, []string) {
	if lead.CreatedAt.IsZero() {
		return 0, nil
	}

	daysOld := int(s.now().UTC().Sub(lead.CreatedAt.UTC()).Hours() / 24)

	switch {
	case daysOld <= 7:
		return 1.0, []string{"Very recent lead"}
	case daysOld <= 30:
		return 0.8, []string{"Recent lead"}
	case daysOld <= 90:
		return 0.5, []string{"Moderately recent lead"}
	default:
		return 0.2, nil
	}
}
