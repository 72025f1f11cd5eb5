package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Catalog is an immutable snapshot of the built collections.
// It is safe for concurrent readers; returned records must be treated as read-only.
type Catalog struct {
	subjects  []Subject
	programs  []Program
	materials []Material
	notes     []Note
	syllabi   []Syllabus

	subjectIdx  map[string]int
	programIdx  map[string]int
	materialIdx map[string]int
}

// Filter narrows a query; zero fields match everything.
type Filter struct {
	Year      int    `query:"year" validate:"omitempty,year"`
	Semester  int    `query:"sem" validate:"omitempty,semester"`
	SubjectID string `query:"subject"`
	Type      string `query:"type"`
}

func (f Filter) IsEmpty() bool {
	return f.Year == 0 && f.Semester == 0 && f.SubjectID == "" && f.Type == ""
}

// match ignores Type: only materials have one (see matchMaterial).
func (f Filter) match(year, semester int, subjectID string) bool {
	return (f.Year == 0 || f.Year == year) &&
		(f.Semester == 0 || f.Semester == semester) &&
		(f.SubjectID == "" || f.SubjectID == subjectID)
}

func (f Filter) matchMaterial(m Material) bool {
	return f.match(m.Year, m.Semester, m.SubjectID) &&
		(f.Type == "" || strings.EqualFold(f.Type, m.Type))
}

type Stats struct {
	Subjects  int `json:"subjects"`
	Programs  int `json:"programs"`
	Materials int `json:"materials"`
	Notes     int `json:"notes"`
	Syllabi   int `json:"syllabi"`
	Semesters int `json:"semesters"`
}

// Empty returns a catalog with no records.
func Empty() *Catalog {
	return newCatalog(nil, nil, nil)
}

func newCatalog(subjects []Subject, programs []Program, materials []Material) *Catalog {
	c := &Catalog{
		subjects:    nonNil(subjects),
		programs:    nonNil(programs),
		materials:   nonNil(materials),
		notes:       make([]Note, 0),
		syllabi:     make([]Syllabus, 0),
		subjectIdx:  make(map[string]int, len(subjects)),
		programIdx:  make(map[string]int, len(programs)),
		materialIdx: make(map[string]int, len(materials)),
	}
	for i, s := range c.subjects {
		c.subjectIdx[s.ID] = i
	}
	for i, p := range c.programs {
		if _, ok := c.programIdx[p.ID]; !ok {
			c.programIdx[p.ID] = i
		}
	}
	for i, m := range c.materials {
		if _, ok := c.materialIdx[m.ID]; !ok {
			c.materialIdx[m.ID] = i
		}
		if m.IsSyllabus() {
			c.syllabi = append(c.syllabi, m)
		} else {
			c.notes = append(c.notes, m)
		}
	}
	return c
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}

func (c *Catalog) Subjects(f Filter) []Subject {
	out := make([]Subject, 0)
	for _, s := range c.subjects {
		if f.match(s.Year, s.Semester, s.ID) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Programs(f Filter) []Program {
	out := make([]Program, 0)
	for _, p := range c.programs {
		if f.match(p.Year, p.Semester, p.SubjectID) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Materials(f Filter) []Material {
	return filterMaterials(c.materials, f)
}

func (c *Catalog) Notes(f Filter) []Note {
	return filterMaterials(c.notes, f)
}

func (c *Catalog) Syllabi(f Filter) []Syllabus {
	return filterMaterials(c.syllabi, f)
}

func filterMaterials(materials []Material, f Filter) []Material {
	out := make([]Material, 0)
	for _, m := range materials {
		if f.matchMaterial(m) {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Subject(id string) (Subject, error) {
	if i, ok := c.subjectIdx[id]; ok {
		return c.subjects[i], nil
	}
	return Subject{}, ErrNotFound
}

func (c *Catalog) Program(id string) (Program, error) {
	if i, ok := c.programIdx[id]; ok {
		return c.programs[i], nil
	}
	return Program{}, ErrNotFound
}

func (c *Catalog) Material(id string) (Material, error) {
	if i, ok := c.materialIdx[id]; ok {
		return c.materials[i], nil
	}
	return Material{}, ErrNotFound
}

func (c *Catalog) SubjectPrograms(subjectID string) []Program {
	return c.Programs(Filter{SubjectID: subjectID})
}

func (c *Catalog) SubjectMaterials(subjectID string) []Material {
	return c.Materials(Filter{SubjectID: subjectID})
}

// SearchPrograms does a case-insensitive match of term on the title, the language or any tag.
// An empty term matches every program.
func (c *Catalog) SearchPrograms(term string, f Filter) []Program {
	term = strings.ToLower(strings.TrimSpace(term))
	programs := c.Programs(f)
	if term == "" {
		return programs
	}
	out := make([]Program, 0)
	for _, p := range programs {
		if programMatches(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func programMatches(p Program, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) || strings.Contains(strings.ToLower(p.Language), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Semesters lists the distinct (year, semester) buckets holding subjects, in order.
func (c *Catalog) Semesters() []Semester {
	seen := make(map[Semester]struct{})
	out := make([]Semester, 0)
	for _, s := range c.subjects {
		key := Semester{Year: s.Year, Semester: s.Semester}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (c *Catalog) Stats() Stats {
	return Stats{
		Subjects:  len(c.subjects),
		Programs:  len(c.programs),
		Materials: len(c.materials),
		Notes:     len(c.notes),
		Syllabi:   len(c.syllabi),
		Semesters: len(c.Semesters()),
	}
}
