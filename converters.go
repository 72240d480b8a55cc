package leadsearch

import "github.com/huntly/leadsearch/internal/domain"

func toDomainLead(l Lead) domain.Lead {
	return domain.Lead{
		ID:          l.ID,
		UserID:      l.UserID,
		Company:     l.Company,
		Contact:     l.Contact,
		Email:       l.Email,
		Phone:       l.Phone,
		Website:     l.Website,
		Industry:    l.Industry,
		Location:    l.Location,
		Revenue:     l.Revenue,
		Employees:   l.Employees,
		Description: l.Description,
		Keywords:    l.Keywords,
		Score:       l.Score,
		Status:      l.Status,
		Priority:    l.Priority,
		LastContact: l.LastContact,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// leadFromIndexed projects the read-optimized view back onto the public
// Lead type. Timestamps other than IndexedAt are not part of the
// projection and stay zero.
func leadFromIndexed(l domain.IndexedLead) Lead {
	return Lead{
		ID:          l.ID,
		Company:     l.Company,
		Contact:     l.Contact,
		Email:       l.Email,
		Phone:       l.Phone,
		Website:     l.Website,
		Industry:    l.Industry,
		Location:    l.Location,
		Revenue:     l.Revenue,
		Employees:   l.Employees,
		Description: l.Description,
		Keywords:    l.Keywords,
	}
}

func toDomainFilters(f Filters) domain.Filters {
	return domain.Filters{
		Industry:     f.Industry,
		Location:     f.Location,
		CompanySize:  f.CompanySize,
		RevenueRange: f.RevenueRange,
		Keywords:     f.Keywords,
	}
}

func toDomainPreferences(p *Preferences) *domain.Preferences {
	if p == nil {
		return nil
	}
	return &domain.Preferences{
		PreferredIndustries: p.PreferredIndustries,
		PreferredLocations:  p.PreferredLocations,
		CompanySizeRange:    p.CompanySizeRange,
		RevenueRange:        p.RevenueRange,
		ScoringWeights:      p.ScoringWeights,
	}
}

func fromSearchResults(results []domain.SearchResult) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			Lead:         leadFromIndexed(r.Lead),
			Score:        r.RelevanceScore,
			MatchReasons: r.MatchReasons,
			Highlights:   r.HighlightedFields,
		}
	}
	return out
}

func fromIndexStatus(s domain.IndexStatus) IndexStatus {
	return IndexStatus{
		TotalLeads:      s.TotalLeads,
		IndexedLeads:    s.IndexedLeads,
		UnindexedLeads:  s.UnindexedLeads,
		CoveragePercent: s.CoveragePercent,
		LastUpdated:     s.LastUpdated,
	}
}

func fromIndexingStats(s domain.IndexingStats) IndexingStats {
	return IndexingStats{
		TotalLeads:     s.TotalLeads,
		IndexedLeads:   s.IndexedLeads,
		FailedLeads:    s.FailedLeads,
		ProcessingSecs: s.ProcessingSecs,
		Errors:         s.Errors,
	}
}
