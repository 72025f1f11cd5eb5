package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lookups.json"), `{"colors": {"DS": "ai"}, "shortTitles": {"DS": "DSA"}}`)
	writeFile(t, filepath.Join(dir, "year-2", "sem-1.json"), `{"subjects": [{"id": "DS", "name": "Data Structures"}]}`)
	writeFile(t, filepath.Join(dir, "year-1", "sem-2.yaml"), "subjects:\n  - id: PY\n    name: Python\n    hasLab: true\n")
	writeFile(t, filepath.Join(dir, "year-1", "sem-2", "WEB", "subject.yml"), "name: Web Basics\nshort: WB\n")
	writeFile(t, filepath.Join(dir, "year-1", "sem-2", "WEB", "programs.json"),
		`[{"id": "w1", "subjectId": "ignored", "title": "Hello page", "language": "HTML/CSS/JS", "problem": "Say hello"}]`)
	writeFile(t, filepath.Join(dir, "year-1", "sem-2", "WEB", "materials.yaml"),
		"- id: wm1\n  type: Syllabus\n  title: Web syllabus\n  url: https://x/web.pdf\n")
	writeFile(t, filepath.Join(dir, "programs.json"), `{"programs": [{"id": "d1", "subjectId": "DS", "title": "Stack", "language": "C"}]}`)
	writeFile(t, filepath.Join(dir, "materials.json"), `{"materials": [{"id": "dm1", "subjectId": "DS", "type": "Notes", "title": "Stacks", "fileType": "Link"}]}`)
	writeFile(t, filepath.Join(dir, "README.md"), "not data")
	writeFile(t, filepath.Join(dir, "year-1", "notes.txt"), "not data either")

	src, lk, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, catalog.ColorAI, lk.Colors["DS"])
	assert.Equal(t, "DSA", lk.ShortTitles["DS"])

	require.Len(t, src.Groups, 2)
	assert.Equal(t, 1, src.Groups[0].Year)
	assert.Equal(t, 2, src.Groups[0].Semester)
	require.Len(t, src.Groups[0].Subjects, 2)
	assert.Equal(t, "PY", src.Groups[0].Subjects[0].ID)
	assert.True(t, src.Groups[0].Subjects[0].HasLab)
	assert.Equal(t, "WEB", src.Groups[0].Subjects[1].ID, "directory name is the default id")
	assert.Equal(t, "WB", src.Groups[0].Subjects[1].Short)
	assert.Equal(t, 2, src.Groups[1].Year)
	assert.Equal(t, "DS", src.Groups[1].Subjects[0].ID)

	require.Len(t, src.Programs, 2)
	assert.Equal(t, "w1", src.Programs[0].ID)
	assert.Equal(t, "WEB", src.Programs[0].SubjectID, "subject directory owns its programs")
	assert.Equal(t, "d1", src.Programs[1].ID)

	require.Len(t, src.Materials, 2)
	assert.Equal(t, "wm1", src.Materials[0].ID)
	assert.Equal(t, "WEB", src.Materials[0].SubjectID)
	assert.Equal(t, "dm1", src.Materials[1].ID)

	c := catalog.Build(src, lk, catalog.DefaultOptions())
	stats := c.Stats()
	assert.Equal(t, 3, stats.Subjects)
	assert.Equal(t, 2, stats.Programs)
	assert.Equal(t, 1, stats.Syllabi)
	assert.Equal(t, 1, stats.Notes)

	p, err := c.Program("w1")
	require.NoError(t, err)
	assert.True(t, p.CanRunInBrowser)
	assert.Equal(t, 1, p.Year)
	assert.Equal(t, 2, p.Semester)
}

func TestSource_Load_deterministic(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"C", "A", "B"} {
		writeFile(t, filepath.Join(dir, "year-1", "sem-1", id, "subject.json"), `{"name": "Subject `+id+`"}`)
		writeFile(t, filepath.Join(dir, "year-1", "sem-1", id, "programs.json"), `[{"title": "P`+id+`"}]`)
	}

	first, _, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	second, _, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	ids := make([]string, 0)
	for _, s := range first.Groups[0].Subjects {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestSource_Load_errors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		configErr bool
	}{
		{
			name:      "object instead of a list",
			files:     map[string]string{"year-1/sem-1.json": `{"subjects": {"id": "X"}}`},
			configErr: true,
		},
		{
			name:      "invalid yaml",
			files:     map[string]string{"lookups.yaml": "colors: [unclosed"},
			configErr: true,
		},
		{
			name:      "year out of range",
			files:     map[string]string{"year-9/sem-1.json": `{"subjects": []}`},
			configErr: true,
		},
		{
			name:      "semester out of range",
			files:     map[string]string{"year-1/sem-3.json": `{"subjects": []}`},
			configErr: true,
		},
		{
			name: "semester defined twice",
			files: map[string]string{
				"year-1/sem-1.json": `{"subjects": []}`,
				"year-1/sem-1.yaml": "subjects: []\n",
			},
			configErr: true,
		},
		{
			name:      "subject programs are not a list",
			files:     map[string]string{"year-1/sem-1/X/programs.json": `{"programs": []}`},
			configErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
			}

			_, _, err := NewSource(dir).Load(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.configErr, core.IsConfigError(err), "err = %v", err)
		})
	}
}

func TestSource_Load_missingDir(t *testing.T) {
	_, _, err := NewSource(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestSource_Load_emptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lookups.json"), "")
	writeFile(t, filepath.Join(dir, "year-1", "sem-1.json"), "  \n")

	src, lk, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lk.Colors)
	require.Len(t, src.Groups, 1)
	assert.Empty(t, src.Groups[0].Subjects)
}
