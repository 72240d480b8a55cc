package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Empty(t *testing.T) {
	p := New()

	parsed := p.Parse("")
	assert.Empty(t, parsed.Terms)
	assert.Empty(t, parsed.Phrases)
	assert.Empty(t, parsed.Filters)
	assert.True(t, parsed.IsEmpty())

	parsed = p.Parse("   ")
	assert.True(t, parsed.IsEmpty())
}

func TestParse_TermsAndStopWords(t *testing.T) {
	p := New()

	parsed := p.Parse("software companies in the cloud")
	assert.Equal(t, []string{"software", "companies", "cloud"}, parsed.Terms)
}

func TestParse_ShortTokensDropped(t *testing.T) {
	p := New()

	parsed := p.Parse("x y golang")
	assert.Equal(t, []string{"golang"}, parsed.Terms)
}

func TestParse_Dedupe(t *testing.T) {
	p := New()

	parsed := p.Parse("fintech fintech startups fintech")
	assert.Equal(t, []string{"fintech", "startups"}, parsed.Terms)
}

func TestParse_Phrases(t *testing.T) {
	p := New()

	parsed := p.Parse(`"machine learning" consulting "data science"`)
	assert.Equal(t, []string{"machine learning", "data science"}, parsed.Phrases)
	// Phrase words do not leak into terms.
	assert.Equal(t, []string{"consulting"}, parsed.Terms)
}

func TestParse_CleansSpecialChars(t *testing.T) {
	p := New()

	parsed := p.Parse("B2B! sales@scale (now)")
	assert.Equal(t, []string{"b2b", "sales", "scale", "now"}, parsed.Terms)
}

func TestParse_HyphensAndAccentsSurvive(t *testing.T) {
	p := New()

	parsed := p.Parse("e-commerce São Paulo")
	assert.Contains(t, parsed.Terms, "e-commerce")
	assert.Contains(t, parsed.Terms, "são")
}

func TestParse_ImplicitIndustry(t *testing.T) {
	p := New()

	tests := []struct {
		query string
		want  string
	}{
		{"software companies", "Tecnologia"},
		{"tech startups", "Tecnologia"},
		{"retail chains", "E-commerce"},
		{"banking leads", "Financeiro"},
		{"healthcare providers", "Saúde"},
		{"school networks", "Educação"},
		{"industrial suppliers", "Industrial"},
	}
	for _, tt := range tests {
		parsed := p.Parse(tt.query)
		assert.Equal(t, tt.want, parsed.Filters[FilterIndustry], "query %q", tt.query)
	}
}

func TestParse_ImplicitLocation(t *testing.T) {
	p := New()

	parsed := p.Parse("leads in sao paulo")
	assert.Equal(t, "São Paulo", parsed.Filters[FilterLocation])

	parsed = p.Parse("companies rj")
	assert.Equal(t, "Rio de Janeiro", parsed.Filters[FilterLocation])
}

func TestParse_ImplicitSize(t *testing.T) {
	p := New()

	parsed := p.Parse("startup leads")
	assert.Equal(t, "1-10", parsed.Filters[FilterCompanySize])

	parsed = p.Parse("enterprise accounts")
	assert.Equal(t, "200+", parsed.Filters[FilterCompanySize])
}

func TestParse_FirstMatchWinsPerCategory(t *testing.T) {
	p := New()

	// "tech" (industry) appears after "retail" in the text, but pattern
	// order decides: the technology pattern is checked first.
	parsed := p.Parse("retail tech companies")
	assert.Equal(t, "Tecnologia", parsed.Filters[FilterIndustry])
}

func TestParse_MultipleCategories(t *testing.T) {
	p := New()

	parsed := p.Parse("large software companies in são paulo")
	assert.Equal(t, "Tecnologia", parsed.Filters[FilterIndustry])
	assert.Equal(t, "São Paulo", parsed.Filters[FilterLocation])
	assert.Equal(t, "51-200", parsed.Filters[FilterCompanySize])
}
