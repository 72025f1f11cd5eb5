package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/labhub/core/catalog"
)

const catalogCtxKey = "catalog"

// snapshotMiddleware pins the current catalog snapshot for the whole request,
// so a reload in the middle of it cannot mix two catalogs.
func snapshotMiddleware(catalogs Catalogs) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(catalogCtxKey, catalogs.Catalog())
			return next(ctx)
		}
	}
}

func getContextCatalog(ctx echo.Context) *catalog.Catalog {
	if c, ok := ctx.Get(catalogCtxKey).(*catalog.Catalog); ok && c != nil {
		return c
	}
	return catalog.Empty()
}
