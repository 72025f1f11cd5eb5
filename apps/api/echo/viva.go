package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core/viva"
)

type vivaApi struct {
	gen      viva.Generator
	validate *validator.Validate
}

func registerVivaAPI(g *echo.Group, gen viva.Generator, validate *validator.Validate) {
	api := vivaApi{gen: gen, validate: validate}

	g.POST("/viva", api.generate)
	g.POST("/programs/:id/viva", api.generateForProgram)
}

// Handlers

func (api *vivaApi) generate(ctx echo.Context) error {
	var data viva.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to viva.Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return api.respond(ctx, data)
}

func (api *vivaApi) generateForProgram(ctx echo.Context) error {
	p, err := getContextCatalog(ctx).Program(ctx.Param("id"))
	if err != nil {
		return err
	}
	return api.respond(ctx, viva.Request{Aim: p.Aim, Code: p.Code})
}

func (api *vivaApi) respond(ctx echo.Context, req viva.Request) error {
	set, err := api.gen.Generate(ctx.Request().Context(), req)
	if err != nil {
		// the generation is remote: whatever went wrong, it is a bad gateway
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "failed to generate viva questions",
			Internal: err,
		}
	}
	return ctx.JSON(http.StatusOK, set)
}
