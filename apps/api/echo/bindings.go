package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/labhub/core/catalog"
)

var (
	orderingParam = "ordering"
	searchParam   = "search"
)

type Ordering struct {
	Orderings []catalog.Ordering
}

// Bind reads "?ordering=field1,-field2": a leading "-" sorts descending.
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, catalog.Ordering{Field: field, Ascending: !descending})
	}
}

// Search holds the "?search=" term.
type Search struct {
	Term string
}

func (s *Search) Bind(ctx echo.Context) {
	s.Term = strings.TrimSpace(ctx.QueryParam(searchParam))
}
