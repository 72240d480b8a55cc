package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// GetLead returns the cached indexed-lead projection.
func (c *Cache) GetLead(ctx context.Context, id int64) (domain.IndexedLead, bool) {
	data, ok := c.get(ctx, c.leadKey(id))
	if !ok {
		return domain.IndexedLead{}, false
	}
	var lead domain.IndexedLead
	if err := json.Unmarshal(data, &lead); err != nil {
		c.logger.Warn("Failed to decode cached lead",
			zap.Int64("lead_id", id), zap.Error(err))
		return domain.IndexedLead{}, false
	}
	return lead, true
}

// PutLead caches the indexed-lead projection.
func (c *Cache) PutLead(ctx context.Context, lead domain.IndexedLead) {
	data, err := json.Marshal(lead)
	if err != nil {
		c.logger.Warn("Failed to encode lead projection",
			zap.Int64("lead_id", lead.ID), zap.Error(err))
		return
	}
	c.put(ctx, c.leadKey(lead.ID), data, c.cfg.LeadTTL)
}

// DeleteLead drops the cached projection for a lead.
func (c *Cache) DeleteLead(ctx context.Context, id int64) {
	if c.store == nil {
		return
	}
	if err := c.store.Del(ctx, c.leadKey(id)); err != nil {
		c.logger.Warn("Failed to delete cached lead",
			zap.Int64("lead_id", id), zap.Error(err))
	}
}

// GetPreferences returns the cached ranking preferences for a user.
func (c *Cache) GetPreferences(ctx context.Context, userID int64) (domain.Preferences, bool) {
	data, ok := c.get(ctx, c.userPrefsKey(userID))
	if !ok {
		return domain.Preferences{}, false
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		c.logger.Warn("Failed to decode cached preferences",
			zap.Int64("user_id", userID), zap.Error(err))
		return domain.Preferences{}, false
	}
	return prefs, true
}

// PutPreferences caches ranking preferences for a user.
func (c *Cache) PutPreferences(ctx context.Context, userID int64, prefs domain.Preferences) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return
	}
	c.put(ctx, c.userPrefsKey(userID), data, c.cfg.UserPrefsTTL)
}
