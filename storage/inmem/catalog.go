package inmemdb

import (
	"time"

	"github.com/trezcool/labhub/core/catalog"
)

var nowFunc = time.Now // mockable

// CatalogStore keeps the published catalog snapshots in memory.
type CatalogStore struct {
	db *catalogTable
}

var _ catalog.Store = (*CatalogStore)(nil)

// NewCatalogStore returns a catalog.Store keeping the snapshot in memory.
// Snapshots are swapped whole: readers holding a previous one keep a consistent view.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db.catalog}
}

func (s *CatalogStore) Get() *catalog.Catalog {
	s.db.RLock()
	defer s.db.RUnlock()
	return s.db.current
}

func (s *CatalogStore) Set(c *catalog.Catalog) {
	s.db.Lock()
	defer s.db.Unlock()
	s.db.current = c
	s.db.version++
	s.db.updatedAt = nowFunc().UTC()
}

// Version returns how many snapshots were published and when the last one was.
func (s *CatalogStore) Version() (int, time.Time) {
	s.db.RLock()
	defer s.db.RUnlock()
	return s.db.version, s.db.updatedAt
}
