package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
)

type (
	// Source provides the raw records and lookup tables the catalog is built from.
	Source interface {
		Load(ctx context.Context) (Sources, Lookups, error)
	}

	// Store publishes the current catalog snapshot to readers.
	Store interface {
		Get() *Catalog
		Set(c *Catalog)
	}

	Service struct {
		src    Source
		store  Store
		opts   Options
		logger core.Logger
	}
)

func NewService(src Source, store Store, opts Options, logger core.Logger) *Service {
	return &Service{
		src:    src,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Catalog returns the current snapshot; it is empty until the first successful Reload.
func (svc *Service) Catalog() *Catalog {
	if c := svc.store.Get(); c != nil {
		return c
	}
	return Empty()
}

// Reload rebuilds the catalog from its source and publishes it.
// On failure nothing is published and the previous snapshot stays in use.
func (svc *Service) Reload(ctx context.Context) (Stats, error) {
	src, lk, err := svc.src.Load(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "loading catalog sources")
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, errors.Wrap(err, "loading catalog sources")
	}

	c := Build(src, lk, svc.opts)
	svc.store.Set(c)

	stats := c.Stats()
	svc.logger.Info("catalog built", map[string]interface{}{
		"subjects":  stats.Subjects,
		"programs":  stats.Programs,
		"notes":     stats.Notes,
		"syllabi":   stats.Syllabi,
		"semesters": stats.Semesters,
	})
	if issues := Audit(src, lk); len(issues) > 0 {
		svc.logger.Debug("catalog source issues", map[string]interface{}{"count": len(issues)})
	}
	return stats, nil
}
