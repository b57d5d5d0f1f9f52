// Package snapcache implements the snapshot cache using BadgerHold.
// Cached portfolio summaries carry a bounded TTL so a stale snapshot
// is recomputed rather than served.
package snapcache

import (
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Store implements interfaces.SnapshotCache backed by BadgerHold.
type Store struct {
	db     *badgerhold.Store
	ttl    time.Duration
	logger *common.Logger
}

// entry is the persisted cache record.
type entry struct {
	UserID   string
	Summary  models.PortfolioSummary
	CachedAt time.Time
}

// NewStore opens (or creates) the cache at path with the given TTL.
func NewStore(logger *common.Logger, path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Dur("ttl", ttl).Msg("Snapshot cache opened")
	return &Store{db: db, ttl: ttl, logger: logger}, nil
}

// Get returns the cached summary for userID if one exists and its TTL
// has not elapsed. An expired entry is evicted on read.
func (s *Store) Get(userID string) (*models.PortfolioSummary, bool) {
	var e entry
	if err := s.db.Get(userID, &e); err != nil {
		if err != badgerhold.ErrNotFound {
			s.logger.Warn().Err(err).Str("user", userID).Msg("Snapshot cache read failed")
		}
		return nil, false
	}
	if time.Since(e.CachedAt) > s.ttl {
		if err := s.db.Delete(userID, entry{}); err != nil && err != badgerhold.ErrNotFound {
			s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to evict expired snapshot")
		}
		return nil, false
	}
	return &e.Summary, true
}

// Put stores the summary for userID, replacing any previous entry.
func (s *Store) Put(userID string, summary *models.PortfolioSummary) error {
	e := entry{
		UserID:   userID,
		Summary:  *summary,
		CachedAt: time.Now(),
	}
	if err := s.db.Upsert(userID, &e); err != nil {
		return fmt.Errorf("failed to cache snapshot for user '%s': %w", userID, err)
	}
	return nil
}

// Invalidate drops any cached snapshot for the user.
func (s *Store) Invalidate(userID string) error {
	if err := s.db.Delete(userID, entry{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to invalidate snapshot for user '%s': %w", userID, err)
	}
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}
