package ranking

// Weight table keys.
const (
	WeightTextRelevance     = "text_relevance"
	WeightIndustryMatch     = "industry_match"
	WeightLocationProximity = "location_proximity"
	WeightCompanySize       = "company_size"
	WeightDataQuality       = "data_quality"
	WeightFreshness         = "freshness"
)

var defaultWeights = map[string]float64{
	WeightTextRelevance:     0.4,
	WeightIndustryMatch:     0.25,
	WeightLocationProximity: 0.15,
	WeightCompanySize:       0.1,
	WeightDataQuality:       0.05,
	WeightFreshness:         0.05,
}

// DefaultWeights returns a copy of the default weight table.
func DefaultWeights() map[string]float64 {
	w := make(map[string]float64, len(defaultWeights))
	for k, v := range defaultWeights {
		w[k] = v
	}
	return w
}

// weight resolves a key against the active table, falling back to the
// default for keys a user-supplied table omits.
func (s *Scorer) weight(key string) float64 {
	if w, ok := s.weights[key]; ok {
		return w
	}
	return defaultWeights[key]
}
