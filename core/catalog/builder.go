package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/labhub/core"
)

// idNamespace seeds the ids assigned to records that come without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://labhub/catalog"))

// Build runs the whole ingestion pipeline: subjects first, then the programs and materials
// referencing them, then the Notes/Syllabi views.
// It is a pure function of its inputs: the same inputs always give deep-equal catalogs.
func Build(src Sources, lk Lookups, opts Options) *Catalog {
	if opts.DefaultYear == 0 {
		opts.DefaultYear = DefaultOptions().DefaultYear
	}
	if opts.DefaultSemester == 0 {
		opts.DefaultSemester = DefaultOptions().DefaultSemester
	}

	subjects := buildSubjects(src.Groups, lk)
	index := make(map[string]*Subject, len(subjects))
	for i := range subjects {
		index[subjects[i].ID] = &subjects[i]
	}
	programs := buildPrograms(src.Programs, index)
	materials := buildMaterials(src.Materials, index, opts)
	return newCatalog(subjects, programs, materials)
}

// sortedGroups returns a copy of groups ordered by (year, semester); input order breaks ties.
func sortedGroups(groups []SubjectGroup) []SubjectGroup {
	sorted := make([]SubjectGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := Semester{Year: sorted[i].Year, Semester: sorted[i].Semester}
		b := Semester{Year: sorted[j].Year, Semester: sorted[j].Semester}
		return a.Less(b)
	})
	return sorted
}

func buildSubjects(groups []SubjectGroup, lk Lookups) []Subject {
	subjects := make([]Subject, 0)
	seen := make(map[string]struct{})

	for _, grp := range sortedGroups(groups) {
		for _, raw := range grp.Subjects {
			id := strings.TrimSpace(raw.ID)
			if _, dup := seen[id]; dup {
				continue // first seen wins
			}
			seen[id] = struct{}{}

			subjects = append(subjects, Subject{
				ID:          id,
				Title:       strings.TrimSpace(raw.Name),
				ShortTitle:  resolveShortTitle(id, raw, lk),
				Description: core.FirstNonEmpty(raw.Short, raw.Description),
				Color:       resolveColor(id, lk),
				HasLab:      raw.HasLab,
				IsLabOnly:   raw.IsLabOnly,
				Year:        grp.Year,
				Semester:    grp.Semester,
			})
		}
	}
	return subjects
}

// resolveShortTitle: lookup table -> source short name -> first word of the name.
func resolveShortTitle(id string, raw RawSubject, lk Lookups) string {
	if short, ok := lk.ShortTitles[id]; ok && strings.TrimSpace(short) != "" {
		return strings.TrimSpace(short)
	}
	if short := strings.TrimSpace(raw.Short); short != "" {
		return short
	}
	if words := strings.Fields(raw.Name); len(words) > 0 {
		return words[0]
	}
	return ""
}

func resolveColor(id string, lk Lookups) Color {
	if c, ok := lk.Colors[id]; ok && c.IsValid() {
		return c
	}
	return ColorDefault
}

func buildPrograms(raws []RawProgram, subjects map[string]*Subject) []Program {
	programs := make([]Program, 0, len(raws))
	for i, raw := range raws {
		subjectID := strings.TrimSpace(raw.SubjectID)
		subj, ok := subjects[subjectID]
		if !ok {
			continue // orphans are dropped
		}

		tags := make([]string, len(raw.Tags))
		copy(tags, raw.Tags)
		code := raw.Code
		if strings.TrimSpace(code) == "" {
			code = noCode
		}

		programs = append(programs, Program{
			ID:              recordID("program", raw.ID, subjectID, raw.Title, i),
			Title:           raw.Title,
			Language:        raw.Language,
			Tags:            tags,
			Aim:             raw.Problem,
			Code:            code,
			CanRunInBrowser: CanRunInBrowser(raw.Language),
			SubjectID:       subjectID,
			Year:            subj.Year,
			Semester:        subj.Semester,
		})
	}
	return programs
}

func buildMaterials(raws []RawMaterial, subjects map[string]*Subject, opts Options) []Material {
	materials := make([]Material, 0, len(raws))
	for i, raw := range raws {
		subjectID := strings.TrimSpace(raw.SubjectID)
		m := Material{
			ID:        recordID("material", raw.ID, subjectID, raw.Title, i),
			SubjectID: subjectID,
			Type:      NormalizeMaterialType(raw.Type, raw.FileType),
			Title:     raw.Title,
			URL:       raw.URL,
			FileType:  raw.FileType,
			Year:      opts.DefaultYear,
			Semester:  opts.DefaultSemester,
		}
		// orphans keep the default classification
		if subj, ok := subjects[subjectID]; ok {
			m.Year = subj.Year
			m.Semester = subj.Semester
		}
		materials = append(materials, m)
	}
	return materials
}

// CanRunInBrowser reports whether programs in language can be run in the browser.
func CanRunInBrowser(language string) bool {
	return strings.EqualFold(language, browserLanguage)
}

// NormalizeMaterialType turns generic materials whose file is a link into Links.
// Syllabi are never reclassified.
func NormalizeMaterialType(typ, fileType string) string {
	if typ == TypeSyllabus {
		return typ
	}
	if fileType == FileLink {
		return TypeLink
	}
	return typ
}

// recordID keeps the source id, or derives a stable one from the record's position and content.
func recordID(kind, id, subjectID, title string, pos int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	name := strings.Join([]string{kind, subjectID, title, strconv.Itoa(pos)}, "\x00")
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
