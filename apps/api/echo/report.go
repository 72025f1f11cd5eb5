package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core/report"
)

type reportApi struct {
	reporter Reporter
	validate *validator.Validate
}

func registerReportAPI(g *echo.Group, reporter Reporter, validate *validator.Validate) {
	api := reportApi{reporter: reporter, validate: validate}

	g.POST("/materials/:id/report", api.reportMaterial)
}

type SuccessResponse struct {
	Success string `json:"success"`
}

// Handlers

func (api *reportApi) reportMaterial(ctx echo.Context) error {
	var data report.Report
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to report.Report")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	m, err := getContextCatalog(ctx).Material(ctx.Param("id"))
	if err != nil {
		return err
	}
	if err := api.reporter.ReportMaterial(m, data); err != nil {
		return errors.Wrap(err, "reporting material")
	}
	return ctx.JSON(http.StatusAccepted, SuccessResponse{Success: "Thank you! The maintainers have been notified."})
}
