package domain

import "time"

// Lead is a prospective business contact record owned by the record store.
// The search core reads leads and writes exactly one field: IndexedAt.
type Lead struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id,omitempty"`
	Company string `json:"company"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`

	Industry  string `json:"industry,omitempty"`
	Location  string `json:"location,omitempty"`
	Revenue   string `json:"revenue,omitempty"`
	Employees string `json:"employees,omitempty"`

	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Score       int      `json:"score"`
	Status      string   `json:"status,omitempty"`
	Priority    string   `json:"priority,omitempty"`

	// IndexedAt is non-nil iff the lead has entries in the token index.
	// The indexer is the only writer of this field.
	IndexedAt   *time.Time `json:"indexed_at,omitempty"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IndexedLead is the read-optimized projection of a Lead plus derived
// search metadata. It is rebuilt on every (re)index and cached with the
// lead-projection TTL; the record store stays the source of truth.
type IndexedLead struct {
	ID          int64    `json:"id"`
	Company     string   `json:"company"`
	Contact     string   `json:"contact"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Industry    string   `json:"industry"`
	Location    string   `json:"location"`
	Revenue     string   `json:"revenue"`
	Employees   string   `json:"employees"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`

	SearchableText string     `json:"searchable_text"`
	CompanyTokens  []string   `json:"company_tokens"`
	IndustryTokens []string   `json:"industry_tokens"`
	LocationTokens []string   `json:"location_tokens"`
	IndexedAt      *time.Time `json:"indexed_at,omitempty"`
}

// LeadMetadata holds the derived search fields extracted from a Lead.
type LeadMetadata struct {
	SearchableText string
	CompanyTokens  []string
	IndustryTokens []string
	LocationTokens []string
	Keywords       []string
	AllTokens      []string
}
