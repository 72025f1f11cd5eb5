package testutil

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
	logsvc "github.com/trezcool/labhub/services/logger"
)

// NewLogger returns a logger that discards everything.
func NewLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), "debug")
}

// Sources returns a small catalog:
//   - year 1 sem 1: PY (Python Programming), with a lab
//   - year 2 sem 1: DS (Data Structures), CN (Computer Networks)
//   - year 3 sem 2: FSD (Full Stack Development)
func Sources() (catalog.Sources, catalog.Lookups) {
	src := catalog.Sources{
		Groups: []catalog.SubjectGroup{
			{Year: 1, Semester: 1, Subjects: []catalog.RawSubject{
				{ID: "PY", Name: "Python Programming", Short: "Python", HasLab: true},
			}},
			{Year: 2, Semester: 1, Subjects: []catalog.RawSubject{
				{ID: "DS", Name: "Data Structures", Description: "Linear and non linear data structures", HasLab: true},
				{ID: "CN", Name: "Computer Networks"},
			}},
			{Year: 3, Semester: 2, Subjects: []catalog.RawSubject{
				{ID: "FSD", Name: "Full Stack Development", HasLab: true, IsLabOnly: true},
			}},
		},
		Programs: []catalog.RawProgram{
			{ID: "py-1", SubjectID: "PY", Title: "Fibonacci", Language: "Python", Tags: []string{"recursion"}, Problem: "Print the fibonacci series", Code: "def fib(n): ..."},
			{ID: "ds-1", SubjectID: "DS", Title: "Stack", Language: "C", Tags: []string{"stack"}, Problem: "Implement a stack", Code: "int push(int x);"},
			{ID: "ds-2", SubjectID: "DS", Title: "Bubble sort", Language: "C", Tags: []string{"sorting"}, Problem: "Sort an array", Code: "void sort(int *a);"},
			{ID: "fsd-1", SubjectID: "FSD", Title: "Calculator", Language: "HTML/CSS/JS", Problem: "Build a calculator"},
			{ID: "lost-1", SubjectID: "OS", Title: "Scheduler", Language: "C"},
		},
		Materials: []catalog.RawMaterial{
			{ID: "py-syl", SubjectID: "PY", Type: catalog.TypeSyllabus, Title: "Python syllabus", URL: "https://x/py.pdf", FileType: catalog.FilePDF},
			{ID: "ds-n1", SubjectID: "DS", Type: catalog.TypeNotes, Title: "Trees", URL: "https://x/trees", FileType: catalog.FileLink},
			{ID: "ds-qp", SubjectID: "DS", Type: catalog.TypeQuestionPaper, Title: "DS 2023", URL: "https://x/ds23.pdf", FileType: catalog.FilePDF},
			{ID: "cn-n1", SubjectID: "CN", Type: catalog.TypeNotes, Title: "OSI model", URL: "https://x/osi.pdf", FileType: catalog.FilePDF},
			{ID: "lost-n1", SubjectID: "OS", Type: catalog.TypeNotes, Title: "Paging", URL: "https://x/paging.pdf"},
		},
	}
	lk := catalog.Lookups{
		Colors:      map[string]catalog.Color{"DS": catalog.ColorAI, "FSD": catalog.ColorFSD, "CN": catalog.ColorCN},
		ShortTitles: map[string]string{"DS": "DSA"},
	}
	return src, lk
}

// Catalog builds the catalog of Sources.
func Catalog() *catalog.Catalog {
	src, lk := Sources()
	return catalog.Build(src, lk, catalog.DefaultOptions())
}

type staticSource struct {
	src catalog.Sources
	lk  catalog.Lookups
}

func (s staticSource) Load(context.Context) (catalog.Sources, catalog.Lookups, error) {
	return s.src, s.lk, nil
}

// NewStaticSource returns a catalog.Source always loading src and lk.
func NewStaticSource(src catalog.Sources, lk catalog.Lookups) catalog.Source {
	return staticSource{src: src, lk: lk}
}

// WriteDataDir lays files out under a temp directory and returns it.
// files maps slash separated paths to their content.
func WriteDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("WriteDataDir() failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteDataDir() failed: %v", err)
		}
	}
	return dir
}
