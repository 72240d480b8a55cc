package ranking

import (
	"fmt"
	"strings"

	"github.com/huntly/leadsearch/internal/domain"
)

// industryScore prefers the explicit filter; user preferences apply
// even without one.
func (s *Scorer) industryScore(lead domain.Lead, filters domain.Filters) (float64, []string) {
	if lead.Industry == "" {
		return 0, nil
	}

	if filters.Industry != "" {
		leadIndustry := strings.ToLower(lead.Industry)
		filterIndustry := strings.ToLower(filters.Industry)

		if leadIndustry == filterIndustry {
			return 1.0, []string{fmt.Sprintf("Exact industry match: %s", lead.Industry)}
		}
		if strings.Contains(leadIndustry, filterIndustry) {
			return 0.7, []string{fmt.Sprintf("Partial industry match: %s", lead.Industry)}
		}
	}

	for _, preferred := range s.prefs.PreferredIndustries {
		if lead.Industry == preferred {
			return 0.6, []string{fmt.Sprintf("User preferred industry: %s", lead.Industry)}
		}
	}

	return 0, nil
}

// locationScore matches the filter exactly, then by shared word, then
// falls back to user preferences.
func (s *Scorer) locationScore(lead domain.Lead, filters domain.Filters) (float64, []string) {
	if lead.Location == "" {
		return 0, nil
	}

	if filters.Location != "" {
		leadLocation := strings.ToLower(lead.Location)
		filterLocation := strings.ToLower(filters.Location)

		if leadLocation == filterLocation {
			return 1.0, []string{fmt.Sprintf("Exact location match: %s", lead.Location)}
		}
		for _, part := range strings.Fields(filterLocation) {
			if strings.Contains(leadLocation, part) {
				return 0.8, []string{fmt.Sprintf("Location proximity: %s", lead.Location)}
			}
		}
	}

	for _, preferred := range s.prefs.PreferredLocations {
		if lead.Location == preferred {
			return 0.6, []string{fmt.Sprintf("User preferred location: %s", lead.Location)}
		}
	}

	return 0, nil
}

// sizeScore compares employee bands; mutual substring counts as a
// range overlap.
func (s *Scorer) sizeScore(lead domain.Lead, filters domain.Filters) (float64, []string) {
	if filters.CompanySize == "" || lead.Employees == "" {
		return 0, nil
	}

	if lead.Employees == filters.CompanySize {
		return 1.0, []string{fmt.Sprintf("Exact size match: %s", lead.Employees)}
	}
	if strings.Contains(lead.Employees, filters.CompanySize) ||
		strings.Contains(filters.CompanySize, lead.Employees) {
		return 0.7, []string{fmt.Sprintf("Size range match: %s", lead.Employees)}
	}

	return 0, nil
}
