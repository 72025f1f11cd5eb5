package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core/catalog"
)

type catalogApi struct {
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, validate *validator.Validate) {
	api := catalogApi{validate: validate}

	g.GET("/catalog", api.dashboard)
	g.GET("/semesters", api.semesters)

	g.GET("/subjects", api.querySubjects)
	g.GET("/subjects/:id", api.retrieveSubject)

	g.GET("/programs", api.queryPrograms)
	g.GET("/programs/:id", api.retrieveProgram)

	g.GET("/notes", api.queryNotes)
	g.GET("/syllabi", api.querySyllabi)
	g.GET("/materials/:id", api.retrieveMaterial)
}

// Responses

type (
	DashboardResponse struct {
		Subjects []catalog.Subject  `json:"subjects"`
		Programs []catalog.Program  `json:"programs"`
		Notes    []catalog.Note     `json:"notes"`
		Syllabi  []catalog.Syllabus `json:"syllabi"`
	}

	SubjectResponse struct {
		catalog.Subject
		Programs       []catalog.Program  `json:"programs"`
		QuestionPapers []catalog.Material `json:"questionPapers"`
		Materials      []catalog.Material `json:"materials"`
	}
)

// bindFilter reads and validates the year/sem/subject/type query params.
func (api *catalogApi) bindFilter(ctx echo.Context) (catalog.Filter, error) {
	var f catalog.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &f); err != nil {
		return f, errors.Wrap(err, "binding to catalog.Filter")
	}
	if err := api.validate.Struct(f); err != nil {
		return f, err
	}
	return f, nil
}

// Handlers

func (api *catalogApi) dashboard(ctx echo.Context) error {
	f, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}
	c := getContextCatalog(ctx)
	return ctx.JSON(http.StatusOK, DashboardResponse{
		Subjects: c.Subjects(f),
		Programs: c.Programs(f),
		Notes:    c.Notes(f),
		Syllabi:  c.Syllabi(f),
	})
}

func (api *catalogApi) semesters(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, getContextCatalog(ctx).Semesters())
}

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	f, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, getContextCatalog(ctx).Subjects(f))
}

func (api *catalogApi) retrieveSubject(ctx echo.Context) error {
	c := getContextCatalog(ctx)
	subj, err := c.Subject(ctx.Param("id"))
	if err != nil {
		return err
	}

	res := SubjectResponse{
		Subject:        subj,
		Programs:       c.SubjectPrograms(subj.ID),
		QuestionPapers: make([]catalog.Material, 0),
		Materials:      make([]catalog.Material, 0),
	}
	for _, m := range c.SubjectMaterials(subj.ID) {
		if m.Type == catalog.TypeQuestionPaper {
			res.QuestionPapers = append(res.QuestionPapers, m)
		} else {
			res.Materials = append(res.Materials, m)
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) queryPrograms(ctx echo.Context) error {
	f, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}
	var search Search
	search.Bind(ctx)
	var ord Ordering
	ord.Bind(ctx)

	programs := getContextCatalog(ctx).SearchPrograms(search.Term, f)
	catalog.SortPrograms(programs, ord.Orderings)
	return ctx.JSON(http.StatusOK, programs)
}

func (api *catalogApi) retrieveProgram(ctx echo.Context) error {
	p, err := getContextCatalog(ctx).Program(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *catalogApi) queryNotes(ctx echo.Context) error {
	f, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, getContextCatalog(ctx).Notes(f))
}

func (api *catalogApi) querySyllabi(ctx echo.Context) error {
	f, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, getContextCatalog(ctx).Syllabi(f))
}

func (api *catalogApi) retrieveMaterial(ctx echo.Context) error {
	m, err := getContextCatalog(ctx).Material(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}
