package inmemdb

import (
	"sync"
	"time"

	"github.com/trezcool/labhub/core/catalog"
)

type (
	DB struct {
		catalog *catalogTable
	}

	catalogTable struct {
		sync.RWMutex
		current   *catalog.Catalog
		version   int
		updatedAt time.Time
	}
)

func Open() (*DB, error) {
	db := &DB{
		catalog: &catalogTable{},
	}
	return db, nil
}
