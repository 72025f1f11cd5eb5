package echoapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
	"github.com/trezcool/labhub/core/report"
	"github.com/trezcool/labhub/tests"
)

func Test_reportApi_reportMaterial(t *testing.T) {
	app := setup(t)
	accepted := marshalObj(t, SuccessResponse{Success: "Thank you! The maintainers have been notified."})

	tests := []struct {
		httpTest
		wantSent int
	}{
		{
			httpTest: httpTest{
				name: "report", method: http.MethodPost, path: "/v1/materials/ds-n1/report",
				body: []byte(`{"reason": "The link is dead", "email": "student@uni.test"}`), wantCode: http.StatusAccepted, wantData: accepted,
			},
			wantSent: 1,
		},
		{
			httpTest: httpTest{
				name: "anonymous report of an orphan", method: http.MethodPost, path: "/v1/materials/lost-n1/report",
				body: []byte(`{"reason": "Which subject is this?"}`), wantCode: http.StatusAccepted, wantData: accepted,
			},
			wantSent: 1,
		},
		{
			httpTest: httpTest{
				name: "missing reason", method: http.MethodPost, path: "/v1/materials/ds-n1/report",
				body: []byte(`{"reason": "  "}`), wantCode: http.StatusBadRequest,
				wantData: []byte(`{"reason": "this field is required"}`),
			},
		},
		{
			httpTest: httpTest{
				name: "invalid email", method: http.MethodPost, path: "/v1/materials/ds-n1/report",
				body: []byte(`{"reason": "dead", "email": "nope"}`), wantCode: http.StatusBadRequest,
				wantData: []byte(`{"email": "email must be a valid email address"}`),
			},
		},
		{
			httpTest: httpTest{
				name: "unknown material", method: http.MethodPost, path: "/v1/materials/nope/report",
				body: []byte(`{"reason": "dead"}`), wantCode: http.StatusNotFound,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.mailSvc.Reset()
			checkCodeAndData(t, tt.httpTest, tt.run(t, app))
			assert.Len(t, app.mailSvc.SentMessages(), tt.wantSent)
		})
	}

	app.mailSvc.Reset()
	httpTest{method: http.MethodPost, path: "/v1/materials/ds-qp/report", body: []byte(`{"reason": "wrong year"}`)}.run(t, app)
	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Material reported: DS 2023", sent[0].Subject)
	assert.Nil(t, sent[0].ReplyTo)
}

type fakeReporter struct {
	got []catalog.Material
}

func (r *fakeReporter) ReportMaterial(m catalog.Material, _ report.Report) error {
	r.got = append(r.got, m)
	return nil
}

type swappableCatalogs struct {
	c *catalog.Catalog
}

func (s *swappableCatalogs) Catalog() *catalog.Catalog { return s.c }

func Test_reportApi_reportMaterial_reloadDuringRequest(t *testing.T) {
	validate, _ := core.NewValidator()
	reporter := &fakeReporter{}
	api := &reportApi{reporter: reporter, validate: validate}
	catalogs := &swappableCatalogs{c: testutil.Catalog()}

	// the catalog is swapped after the request pinned its snapshot
	handler := snapshotMiddleware(catalogs)(func(ctx echo.Context) error {
		catalogs.c = catalog.Empty()
		return api.reportMaterial(ctx)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/materials/ds-n1/report", strings.NewReader(`{"reason": "dead link"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("ds-n1")

	require.NoError(t, handler(ctx))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, reporter.got, 1)
	assert.Equal(t, "Trees", reporter.got[0].Title)
}
