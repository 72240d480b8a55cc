package leadsearch

import "time"

// Lead is a prospective business contact record.
type Lead struct {
	ID      int64
	UserID  int64
	Company string
	Contact string
	Email   string
	Phone   string
	Website string

	Industry  string
	Location  string
	Revenue   string
	Employees string

	Description string
	Keywords    []string
	Score       int
	Status      string
	Priority    string

	LastContact *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filters narrows a search to structured lead attributes.
type Filters struct {
	Industry     string
	Location     string
	CompanySize  string
	RevenueRange string
	Keywords     []string
}

// Preferences carries per-user ranking preferences. ScoringWeights,
// when set, replaces the default weight table wholesale.
type Preferences struct {
	PreferredIndustries []string
	PreferredLocations  []string
	CompanySizeRange    string
	RevenueRange        string
	ScoringWeights      map[string]float64
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Filters     Filters
	SortBy      string
	Limit       int
	Offset      int
	Preferences *Preferences
}

// SearchResult is one ranked lead with its score explanation.
type SearchResult struct {
	Lead         Lead
	Score        float64
	MatchReasons []string
	Highlights   map[string]string
}

// IndexStatus summarizes index coverage of the lead corpus.
type IndexStatus struct {
	TotalLeads      int
	IndexedLeads    int
	UnindexedLeads  int
	CoveragePercent float64
	LastUpdated     time.Time
}

// IndexingStats reports the outcome of a bulk indexing run.
type IndexingStats struct {
	TotalLeads     int
	IndexedLeads   int
	FailedLeads    int
	ProcessingSecs float64
	Errors         []string
}
