package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/labhub/core/catalog"
)

func Test_home(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to LabHub API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func Test_catalogApi_dashboard(t *testing.T) {
	app := setup(t)
	c := app.catalogSvc.Catalog()

	dashboard := func(f catalog.Filter) DashboardResponse {
		return DashboardResponse{Subjects: c.Subjects(f), Programs: c.Programs(f), Notes: c.Notes(f), Syllabi: c.Syllabi(f)}
	}

	tests := []httpTest{
		{name: "everything", path: "/v1/catalog", wantData: marshalObj(t, dashboard(catalog.Filter{}))},
		{name: "semester", path: "/v1/catalog?year=2&sem=1", wantData: marshalObj(t, dashboard(catalog.Filter{Year: 2, Semester: 1}))},
		{name: "trailing slash", path: "/v1/catalog/?year=1", wantData: marshalObj(t, dashboard(catalog.Filter{Year: 1}))},
		{
			name: "empty semester", path: "/v1/catalog?year=4&sem=2",
			wantData: []byte(`{"subjects": [], "programs": [], "notes": [], "syllabi": []}`),
		},
		{
			name: "invalid year", path: "/v1/catalog?year=5", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"year": "year must be an academic year between 1 and 4"}`),
		},
		{
			name: "invalid semester", path: "/v1/catalog?sem=3", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"sem": "sem must be a semester between 1 and 2"}`),
		},
		{name: "not a number", path: "/v1/catalog?year=one", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, tt.run(t, app))
		})
	}
}

func Test_catalogApi_subjects(t *testing.T) {
	app := setup(t)
	c := app.catalogSvc.Catalog()
	ds, err := c.Subject("DS")
	require.NoError(t, err)
	dsNotes, err := c.Material("ds-n1")
	require.NoError(t, err)
	dsPaper, err := c.Material("ds-qp")
	require.NoError(t, err)
	fsd, err := c.Subject("FSD")
	require.NoError(t, err)

	tests := []httpTest{
		{name: "all", path: "/v1/subjects", wantData: marshalObj(t, c.Subjects(catalog.Filter{}))},
		{name: "year 2", path: "/v1/subjects?year=2", wantData: marshalObj(t, c.Subjects(catalog.Filter{Year: 2}))},
		{
			name: "detail", path: "/v1/subjects/DS",
			wantData: marshalObj(t, SubjectResponse{
				Subject:        ds,
				Programs:       c.SubjectPrograms("DS"),
				QuestionPapers: []catalog.Material{dsPaper},
				Materials:      []catalog.Material{dsNotes},
			}),
		},
		{
			name: "detail without materials", path: "/v1/subjects/FSD",
			wantData: marshalObj(t, SubjectResponse{
				Subject:        fsd,
				Programs:       c.SubjectPrograms("FSD"),
				QuestionPapers: []catalog.Material{},
				Materials:      []catalog.Material{},
			}),
		},
		{name: "unknown", path: "/v1/subjects/OS", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, tt.run(t, app))
		})
	}

	rec := httpTest{path: "/v1/subjects/DS"}.run(t, app)
	assert.Contains(t, rec.Body.String(), `"shortTitle":"DSA"`)
	assert.Contains(t, rec.Body.String(), `"color":"ai"`)
}

func Test_catalogApi_programs(t *testing.T) {
	app := setup(t)
	c := app.catalogSvc.Catalog()
	program := func(id string) catalog.Program {
		p, err := c.Program(id)
		require.NoError(t, err)
		return p
	}
	list := func(ids ...string) []byte {
		programs := make([]catalog.Program, 0, len(ids))
		for _, id := range ids {
			programs = append(programs, program(id))
		}
		return marshalObj(t, programs)
	}

	tests := []httpTest{
		{name: "all (orphans dropped)", path: "/v1/programs", wantData: list("py-1", "ds-1", "ds-2", "fsd-1")},
		{name: "search title", path: "/v1/programs?search=SORT", wantData: list("ds-2")},
		{name: "search language", path: "/v1/programs?search=c&year=2", wantData: list("ds-1", "ds-2")},
		{name: "search unknown", path: "/v1/programs?search=haskell", wantData: []byte(`[]`)},
		{name: "subject", path: "/v1/programs?subject=DS", wantData: list("ds-1", "ds-2")},
		{name: "ordering", path: "/v1/programs?ordering=-year,title", wantData: list("fsd-1", "ds-2", "ds-1", "py-1")},
		{name: "detail", path: "/v1/programs/fsd-1", wantData: marshalObj(t, program("fsd-1"))},
		{name: "orphan detail", path: "/v1/programs/lost-1", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"})},
		{name: "zero year does not filter", path: "/v1/programs?year=0", wantData: list("py-1", "ds-1", "ds-2", "fsd-1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, tt.run(t, app))
		})
	}

	fsd := program("fsd-1")
	assert.True(t, fsd.CanRunInBrowser)
	assert.Equal(t, "No code available", fsd.Code)
	assert.Equal(t, 3, fsd.Year)
}

func Test_catalogApi_materials(t *testing.T) {
	app := setup(t)
	c := app.catalogSvc.Catalog()

	tests := []httpTest{
		{name: "notes", path: "/v1/notes", wantData: marshalObj(t, c.Notes(catalog.Filter{}))},
		{name: "notes of a subject", path: "/v1/notes?subject=DS", wantData: marshalObj(t, c.Notes(catalog.Filter{SubjectID: "DS"}))},
		{name: "notes by type", path: "/v1/notes?type=link", wantData: marshalObj(t, c.Notes(catalog.Filter{Type: catalog.TypeLink}))},
		{name: "syllabi", path: "/v1/syllabi", wantData: marshalObj(t, c.Syllabi(catalog.Filter{}))},
		{name: "syllabi of year 3", path: "/v1/syllabi?year=3", wantData: []byte(`[]`)},
		{name: "orphan material", path: "/v1/materials/lost-n1", wantData: []byte(`{
			"id": "lost-n1", "subjectId": "OS", "type": "Notes", "title": "Paging",
			"url": "https://x/paging.pdf", "fileType": "", "year": 1, "semester": 1
		}`)},
		{name: "unknown material", path: "/v1/materials/nope", wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, tt.run(t, app))
		})
	}

	rec := httpTest{path: "/v1/notes?type=link"}.run(t, app)
	assert.Contains(t, rec.Body.String(), `"id":"ds-n1"`)
	assert.NotContains(t, rec.Body.String(), `"id":"cn-n1"`)
}

func Test_catalogApi_semesters(t *testing.T) {
	app := setup(t)
	checkCodeAndData(t, httpTest{
		path: "/v1/semesters",
		wantData: []byte(`[
			{"year": 1, "semester": 1},
			{"year": 2, "semester": 1},
			{"year": 3, "semester": 2}
		]`),
	}, httpTest{path: "/v1/semesters"}.run(t, app))
}
