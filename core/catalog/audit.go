package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const suggestionMinRatio = 0.6

type IssueKind string

const (
	IssueDuplicateSubject IssueKind = "duplicate-subject"
	IssueOrphanProgram    IssueKind = "orphan-program"
	IssueOrphanMaterial   IssueKind = "orphan-material"
	IssueUnknownColor     IssueKind = "unknown-color"
)

// Issue is a data problem the builder silently resolved.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	RecordID   string    `json:"recordId"`
	SubjectID  string    `json:"subjectId"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"` // closest known subject id
}

func (i Issue) String() string {
	s := fmt.Sprintf("[%s] %s", i.Kind, i.Message)
	if i.Suggestion != "" {
		s += fmt.Sprintf(" (did you mean %q?)", i.Suggestion)
	}
	return s
}

// Audit lists what Build will drop, default or ignore in src. It does not change Build's output.
func Audit(src Sources, lk Lookups) []Issue {
	issues := make([]Issue, 0)
	known := make(map[string]Semester)
	ids := make([]string, 0)

	for _, grp := range sortedGroups(src.Groups) {
		for _, raw := range grp.Subjects {
			id := strings.TrimSpace(raw.ID)
			if first, dup := known[id]; dup {
				issues = append(issues, Issue{
					Kind:      IssueDuplicateSubject,
					RecordID:  id,
					SubjectID: id,
					Message: fmt.Sprintf("subject %q of year %d semester %d ignored: already defined in year %d semester %d",
						id, grp.Year, grp.Semester, first.Year, first.Semester),
				})
				continue
			}
			known[id] = Semester{Year: grp.Year, Semester: grp.Semester}
			ids = append(ids, id)
		}
	}

	for i, p := range src.Programs {
		subjectID := strings.TrimSpace(p.SubjectID)
		if _, ok := known[subjectID]; ok {
			continue
		}
		issues = append(issues, Issue{
			Kind:       IssueOrphanProgram,
			RecordID:   recordID("program", p.ID, subjectID, p.Title, i),
			SubjectID:  subjectID,
			Message:    fmt.Sprintf("program %q dropped: unknown subject %q", p.Title, subjectID),
			Suggestion: suggestSubject(subjectID, ids),
		})
	}

	for i, m := range src.Materials {
		subjectID := strings.TrimSpace(m.SubjectID)
		if _, ok := known[subjectID]; ok {
			continue
		}
		issues = append(issues, Issue{
			Kind:       IssueOrphanMaterial,
			RecordID:   recordID("material", m.ID, subjectID, m.Title, i),
			SubjectID:  subjectID,
			Message:    fmt.Sprintf("material %q filed under the default semester: unknown subject %q", m.Title, subjectID),
			Suggestion: suggestSubject(subjectID, ids),
		})
	}

	colorIDs := make([]string, 0, len(lk.Colors))
	for id := range lk.Colors {
		colorIDs = append(colorIDs, id)
	}
	sort.Strings(colorIDs)
	for _, id := range colorIDs {
		if c := lk.Colors[id]; !c.IsValid() {
			issues = append(issues, Issue{
				Kind:      IssueUnknownColor,
				RecordID:  id,
				SubjectID: id,
				Message:   fmt.Sprintf("color %q of subject %q is unknown, %q is used", c, id, ColorDefault),
			})
		}
	}
	return issues
}

// suggestSubject returns the known id closest to id, if close enough.
func suggestSubject(id string, known []string) string {
	if id == "" {
		return ""
	}
	var best string
	var bestRatio float64
	for _, k := range known {
		ratio := difflib.NewMatcher(strings.Split(strings.ToLower(id), ""), strings.Split(strings.ToLower(k), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = k, ratio
		}
	}
	if bestRatio < suggestionMinRatio {
		return ""
	}
	return best
}
