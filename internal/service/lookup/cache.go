package lookup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ladenbot/laden/internal/domain/models"
	"github.com/ladenbot/laden/internal/repository/sheets"
)

type snapshot struct {
	records   []models.StockRecord
	fetchedAt time.Time
}

// Cache owns the in-memory copy of the inventory dataset. The snapshot is
// rebuilt wholesale when older than the TTL; stale data is always preferred
// over no data, so a failed refresh keeps the previous snapshot.
type Cache struct {
	repo         sheets.Repository
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time

	refreshMu sync.Mutex   // serializes refresh attempts
	mu        sync.RWMutex // guards snap
	snap      snapshot
}

// NewCache builds a dataset cache over the given row source.
func NewCache(repo sheets.Repository, ttl, fetchTimeout time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		repo:         repo,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Records returns the current snapshot, refreshing it first when stale. The
// returned slice is shared and must be treated as read-only.
func (c *Cache) Records(ctx context.Context) []models.StockRecord {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if len(snap.records) > 0 && c.now().Sub(snap.fetchedAt) < c.ttl {
		return snap.records
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("dataset refresh failed, serving previous snapshot", zap.Error(err))
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.records
}

// Refresh fetches the sheet and swaps in a freshly built snapshot. At most
// one refresh runs at a time; concurrent callers piggyback on the winner's
// result. A fetch or header failure leaves the previous snapshot untouched.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while this one waited for the lock.
	c.mu.RLock()
	fresh := len(c.snap.records) > 0 && c.now().Sub(c.snap.fetchedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	rows, err := c.repo.FetchRows(fetchCtx)
	if err != nil {
		return err
	}

	records, err := buildRecords(rows)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snap = snapshot{records: records, fetchedAt: c.now()}
	c.mu.Unlock()

	c.logger.Info("dataset snapshot refreshed", zap.Int("records", len(records)))
	return nil
}
