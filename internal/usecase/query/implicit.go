package query

import "regexp"

// Filter keys produced by implicit filter extraction.
const (
	FilterIndustry    = "industry"
	FilterLocation    = "location"
	FilterCompanySize = "company_size"
)

type filterPattern struct {
	re    *regexp.Regexp
	value string
}

// Pattern order matters: within a category the first match wins.
var (
	industryPatterns = []filterPattern{
		{regexp.MustCompile(`\b(tech|technology|software|it)\b`), "Tecnologia"},
		{regexp.MustCompile(`\b(ecommerce|e-commerce|retail|commerce)\b`), "E-commerce"},
		{regexp.MustCompile(`\b(finance|financial|bank|banking)\b`), "Financeiro"},
		{regexp.MustCompile(`\b(health|healthcare|medical)\b`), "Saúde"},
		{regexp.MustCompile(`\b(education|educational|school)\b`), "Educação"},
		{regexp.MustCompile(`\b(manufacturing|industrial)\b`), "Industrial"},
	}

	locationPatterns = []filterPattern{
		{regexp.MustCompile(`\b(são paulo|sp|sao paulo)\b`), "São Paulo"},
		{regexp.MustCompile(`\b(rio de janeiro|rj|rio)\b`), "Rio de Janeiro"},
		{regexp.MustCompile(`\b(belo horizonte|bh|minas)\b`), "Belo Horizonte"},
		{regexp.MustCompile(`\b(brasília|brasilia|df)\b`), "Brasília"},
		{regexp.MustCompile(`\b(salvador|bahia|ba)\b`), "Salvador"},
	}

	sizePatterns = []filterPattern{
		{regexp.MustCompile(`\b(startup|small|pequena)\b`), "1-10"},
		{regexp.MustCompile(`\b(medium|média|mid-size)\b`), "11-50"},
		{regexp.MustCompile(`\b(large|grande|big)\b`), "51-200"},
		{regexp.MustCompile(`\b(enterprise|corporation|multinational)\b`), "200+"},
	}
)

// extractImplicitFilters scans cleaned query text for recognized
// industry, location, and company size vocabulary.
func extractImplicitFilters(clean string) map[string]string {
	filters := map[string]string{}

	categories := []struct {
		key      string
		patterns []filterPattern
	}{
		{FilterIndustry, industryPatterns},
		{FilterLocation, locationPatterns},
		{FilterCompanySize, sizePatterns},
	}

	for _, cat := range categories {
		for _, p := range cat.patterns {
			if p.re.MatchString(clean) {
				filters[cat.key] = p.value
				break
			}
		}
	}

	return filters
}
