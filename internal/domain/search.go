package domain

// Sort orders accepted by the search engine.
const (
	SortByRelevance = "relevance"
	SortByCreatedAt = "created_at"
)

// Filters narrows a search to structured lead attributes. Explicit
// filters always win over implicit filters parsed from the query text;
// implicit values fill only unset fields.
type Filters struct {
	Industry     string   `json:"industry,omitempty"`
	Location     string   `json:"location,omitempty"`
	CompanySize  string   `json:"company_size,omitempty"`
	RevenueRange string   `json:"revenue_range,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f.Industry == "" && f.Location == "" && f.CompanySize == "" &&
		f.RevenueRange == "" && len(f.Keywords) == 0
}

// Query is a single search request.
type Query struct {
	Text    string  `json:"text"`
	Filters Filters `json:"filters"`
	SortBy  string  `json:"sort_by"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// ParsedQuery is the structured form of a raw query string. It is
// produced per search call and never persisted.
type ParsedQuery struct {
	Terms   []string
	Phrases []string
	Filters map[string]string
}

// IsEmpty reports whether parsing yielded nothing usable.
func (p ParsedQuery) IsEmpty() bool {
	return len(p.Terms) == 0 && len(p.Phrases) == 0 && len(p.Filters) == 0
}

// Preferences carries per-user ranking preferences. ScoringWeights, when
// present, replaces the default weight table; the owning collaborator
// validates that entries lie in [0,1] and sum to ~1.0.
type Preferences struct {
	PreferredIndustries []string           `json:"preferred_industries,omitempty"`
	PreferredLocations  []string           `json:"preferred_locations,omitempty"`
	CompanySizeRange    string             `json:"company_size_range,omitempty"`
	RevenueRange        string             `json:"revenue_range,omitempty"`
	ScoringWeights      map[string]float64 `json:"scoring_weights,omitempty"`
}

// QueryShape identifies a search result set for caching. Limit and
// offset are deliberately absent: one cached superset serves every
// page of the same query.
type QueryShape struct {
	Text        string       `json:"text"`
	Filters     Filters      `json:"filters"`
	SortBy      string       `json:"sort_by"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// SearchResult is one ranked lead with its score explanation. Produced
// fresh per query; transiently cached only as part of a result set.
type SearchResult struct {
	Lead              IndexedLead       `json:"lead"`
	RelevanceScore    float64           `json:"relevance_score"`
	MatchReasons      []string          `json:"match_reasons"`
	HighlightedFields map[string]string `json:"highlighted_fields,omitempty"`
}
