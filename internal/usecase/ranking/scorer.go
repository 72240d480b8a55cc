// Package ranking computes relevance scores for leads. The final score
// is a weighted sum of six sub-scores, each bounded to [0,1], with the
// sum capped at 1.0.
package ranking

import (
	"time"

	"github.com/huntly/leadsearch/internal/domain"
)

// Scorer ranks leads against a parsed query and filters. A scorer is
// built per search request because user preferences change the weight
// table; it is cheap to construct.
type Scorer struct {
	prefs   domain.Preferences
	weights map[string]float64
	now     func() time.Time
}

// New creates a scorer. A non-empty ScoringWeights table in prefs
// replaces the default table wholesale; missing keys still resolve to
// their defaults.
func New(prefs *domain.Preferences) *Scorer {
	s := &Scorer{now: time.Now}
	if prefs != nil {
		s.prefs = *prefs
	}
	if len(s.prefs.ScoringWeights) > 0 {
		s.weights = s.prefs.ScoringWeights
	} else {
		s.weights = defaultWeights
	}
	return s
}

// Score returns the relevance score in [0,1] and human-readable match
// reasons for one lead.
func (s *Scorer) Score(
	lead domain.Lead, parsed domain.ParsedQuery, filters domain.Filters,
) (float64, []string) {
	var (
		score   float64
		reasons []string
	)

	add := func(sub float64, key string, subReasons []string) {
		score += sub * s.weight(key)
		reasons = append(reasons, subReasons...)
	}

	textScore, textReasons := s.textScore(lead, parsed)
	add(textScore, WeightTextRelevance, textReasons)

	industryScore, industryReasons := s.industryScore(lead, filters)
	add(industryScore, WeightIndustryMatch, industryReasons)

	locationScore, locationReasons := s.locationScore(lead, filters)
	add(locationScore, WeightLocationProximity, locationReasons)

	sizeScore, sizeReasons := s.sizeScore(lead, filters)
	add(sizeScore, WeightCompanySize, sizeReasons)

	qualityScore, qualityReasons := s.qualityScore(lead)
	add(qualityScore, WeightDataQuality, qualityReasons)

	freshnessScore, freshnessReasons := s.freshnessScore(lead)
	add(freshnessScore, WeightFreshness, freshnessReasons)

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}
