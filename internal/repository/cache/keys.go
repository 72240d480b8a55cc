package cache

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/huntly/leadsearch/internal/domain"
)

// Namespace prefixes appended to the configured key prefix.
const (
	searchPrefix      = "search:"
	leadPrefix        = "lead:"
	userPrefsPrefix   = "user_prefs:"
	analyticsPrefix   = "analytics:"
	suggestionsPrefix = "suggestions:"
	indexPrefix       = "index:"
	jobPrefix         = "index_job:"
	popularKey        = "popular_searches"
)

// ShapeKey returns the cache key for a query shape. Struct field order
// is fixed and json.Marshal sorts map keys, so the encoding is
// canonical.
func ShapeKey(shape domain.QueryShape) string {
	data, err := json.Marshal(shape)
	if err != nil {
		return "invalid"
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

func (c *Cache) searchKey(shape domain.QueryShape) string {
	return c.cfg.KeyPrefix + searchPrefix + ShapeKey(shape)
}

func (c *Cache) leadKey(id int64) string {
	return c.cfg.KeyPrefix + leadPrefix + strconv.FormatInt(id, 10)
}

func (c *Cache) userPrefsKey(userID int64) string {
	return c.cfg.KeyPrefix + userPrefsPrefix + strconv.FormatInt(userID, 10)
}

func (c *Cache) analyticsKey(name string) string {
	return c.cfg.KeyPrefix + analyticsPrefix + name
}

func (c *Cache) suggestionsKey(prefix string) string {
	return c.cfg.KeyPrefix + suggestionsPrefix + strings.ToLower(prefix)
}

func (c *Cache) indexKey(token string) string {
	return c.cfg.KeyPrefix + indexPrefix + token
}

func (c *Cache) jobKey(id string) string {
	return c.cfg.KeyPrefix + jobPrefix + id
}

func (c *Cache) popularSearchesKey() string {
	return c.cfg.KeyPrefix + popularKey
}
