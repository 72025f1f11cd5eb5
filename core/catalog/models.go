package catalog

// Color is the display category of a Subject.
type Color string

const (
	ColorAI        Color = "ai"
	ColorFSD       Color = "fsd"
	ColorCN        Color = "cn"
	ColorTinkering Color = "tinkering"
	ColorSPM       Color = "spm"
	ColorCyber     Color = "cyber"
	ColorCloud     Color = "cloud"
	ColorML        Color = "ml"
	ColorWriting   Color = "writing"
	ColorSpeaking  Color = "speaking"
	ColorCNS       Color = "cns"
	ColorWS        Color = "ws"
	ColorSFS       Color = "sfs"
	ColorDefault   Color = "default"
)

var Colors = []Color{
	ColorAI, ColorFSD, ColorCN, ColorTinkering, ColorSPM, ColorCyber, ColorCloud,
	ColorML, ColorWriting, ColorSpeaking, ColorCNS, ColorWS, ColorSFS, ColorDefault,
}

func (c Color) IsValid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// MaterialType
const (
	TypeSyllabus      = "Syllabus"
	TypeAssignment    = "Assignment"
	TypeNotes         = "Notes"
	TypeDocument      = "Document"
	TypePDF           = "PDF"
	TypeLink          = "Link"
	TypeImage         = "Image"
	TypeQuestionPaper = "Question Paper"
)

// FileType
const (
	FilePDF      = "PDF"
	FileImage    = "Image"
	FileLink     = "Link"
	FileDocument = "Document"
)

// browserLanguage is the only language a Program can be run with in the browser.
const browserLanguage = "html/css/js"

// noCode replaces empty program bodies.
const noCode = "No code available"

type Subject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ShortTitle  string `json:"shortTitle"`
	Description string `json:"description"`
	Color       Color  `json:"color"`
	HasLab      bool   `json:"hasLab"`
	IsLabOnly   bool   `json:"isLabOnly"`
	Year        int    `json:"year"`
	Semester    int    `json:"semester"`
}

type Program struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Language        string   `json:"language"`
	Tags            []string `json:"tags"`
	Aim             string   `json:"aim"`
	Code            string   `json:"code"`
	CanRunInBrowser bool     `json:"canRunInBrowser"`
	SubjectID       string   `json:"subjectId"`
	Year            int      `json:"year"`
	Semester        int      `json:"semester"`
}

type Material struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	FileType  string `json:"fileType"`
	Year      int    `json:"year"`
	Semester  int    `json:"semester"`
}

func (m Material) IsSyllabus() bool { return m.Type == TypeSyllabus }

// Note and Syllabus are views over Material.
type (
	Note     = Material
	Syllabus = Material
)

// Semester identifies a (year, semester) bucket.
type Semester struct {
	Year     int `json:"year"`
	Semester int `json:"semester"`
}

func (s Semester) Less(o Semester) bool {
	if s.Year != o.Year {
		return s.Year < o.Year
	}
	return s.Semester < o.Semester
}
