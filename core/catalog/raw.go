package catalog

// Raw records, as read from the data sources. Optional fields may be empty.
type (
	RawSubject struct {
		ID          string `json:"id" yaml:"id"`
		Name        string `json:"name" yaml:"name"`
		Short       string `json:"short,omitempty" yaml:"short,omitempty"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		HasLab      bool   `json:"hasLab,omitempty" yaml:"hasLab,omitempty"`
		IsLabOnly   bool   `json:"isLabOnly,omitempty" yaml:"isLabOnly,omitempty"`
	}

	// SubjectGroup holds the raw subjects of one (year, semester).
	SubjectGroup struct {
		Year     int
		Semester int
		Subjects []RawSubject
	}

	RawProgram struct {
		ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
		SubjectID string   `json:"subjectId" yaml:"subjectId"`
		Title     string   `json:"title" yaml:"title"`
		Language  string   `json:"language" yaml:"language"`
		Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
		Problem   string   `json:"problem" yaml:"problem"`
		Code      string   `json:"code,omitempty" yaml:"code,omitempty"`
	}

	RawMaterial struct {
		ID        string `json:"id,omitempty" yaml:"id,omitempty"`
		SubjectID string `json:"subjectId" yaml:"subjectId"`
		Type      string `json:"type" yaml:"type"`
		Title     string `json:"title" yaml:"title"`
		URL       string `json:"url" yaml:"url"`
		FileType  string `json:"fileType,omitempty" yaml:"fileType,omitempty"`
	}

	// Sources is everything the builder ingests.
	Sources struct {
		Groups    []SubjectGroup
		Programs  []RawProgram
		Materials []RawMaterial
	}
)

// Lookups are the static per-subject tables consulted while building Subjects.
type Lookups struct {
	Colors      map[string]Color  `json:"colors" yaml:"colors"`
	ShortTitles map[string]string `json:"shortTitles" yaml:"shortTitles"`
}

// Options configure the fallbacks of the builder.
type Options struct {
	// DefaultYear and DefaultSemester classify materials whose subject is unknown.
	DefaultYear     int
	DefaultSemester int
}

func DefaultOptions() Options {
	return Options{DefaultYear: 1, DefaultSemester: 1}
}
