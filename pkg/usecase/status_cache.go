package usecase

import (
	"sync"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
)

const (
	statusCacheTTL = 30 * time.Second
)

type cachedSummary struct {
	summary   *model.CaseSummary
	expiresAt time.Time
}

// statusCache keeps recently derived case summaries so listings do not
// recount every response row on every refresh. Submissions invalidate
// the affected case, so a stale entry can only come from another
// process and expires within the TTL.
type statusCache struct {
	cache sync.Map
}

func newStatusCache() *statusCache {
	return &statusCache{}
}

func (c *statusCache) get(caseID int64) (*model.CaseSummary, bool) {
	val, ok := c.cache.Load(caseID)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedSummary)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(caseID)
		return nil, false
	}

	return cached.summary, true
}

func (c *statusCache) set(summary *model.CaseSummary) {
	cached := &cachedSummary{
		summary:   summary,
		expiresAt: time.Now().Add(statusCacheTTL),
	}
	c.cache.Store(summary.CaseID, cached)
}

func (c *statusCache) remove(caseID int64) {
	c.cache.Delete(caseID)
}
