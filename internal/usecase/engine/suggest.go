package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const popularScanDepth = 50

// Suggestions returns up to limit autocomplete candidates for a
// partial query: popular searches sharing the prefix first, then
// distinct company names, then industries.
func (s *Service) Suggestions(ctx context.Context, partial string, limit int) []string {
	partial = strings.TrimSpace(partial)
	if len([]rune(partial)) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	prefix := strings.ToLower(partial)
	if cached, ok := s.cache.GetSuggestions(ctx, prefix); ok {
		return capSlice(cached, limit)
	}

	var suggestions []string
	seen := map[string]struct{}{}
	add := func(v string) {
		if v == "" || len(suggestions) >= limit {
			return
		}
		if _, dup := seen[strings.ToLower(v)]; dup {
			return
		}
		seen[strings.ToLower(v)] = struct{}{}
		suggestions = append(suggestions, v)
	}

	for _, popular := range s.cache.PopularSearches(ctx, popularScanDepth) {
		if strings.HasPrefix(strings.ToLower(popular), prefix) {
			add(popular)
		}
	}

	for _, column := range []string{"company", "industry"} {
		if len(suggestions) >= limit {
			break
		}
		values, err := s.records.DistinctPrefix(ctx, column, partial, limit-len(suggestions))
		if err != nil {
			s.logger.Warn("Suggestion lookup failed",
				zap.String("column", column), zap.Error(err))
			continue
		}
		for _, v := range values {
			add(v)
		}
	}

	s.cache.PutSuggestions(ctx, prefix, suggestions)
	return suggestions
}

func capSlice(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}
