package catalog

import (
	"sort"
	"strings"
)

type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// programLess compares two programs on a single field; ok is false for unknown fields.
func programLess(field string, a, b Program) (less, equal, ok bool) {
	switch strings.ToLower(field) {
	case "title":
		x, y := strings.ToLower(a.Title), strings.ToLower(b.Title)
		return x < y, x == y, true
	case "language":
		x, y := strings.ToLower(a.Language), strings.ToLower(b.Language)
		return x < y, x == y, true
	case "subject":
		return a.SubjectID < b.SubjectID, a.SubjectID == b.SubjectID, true
	case "year":
		return a.Year < b.Year, a.Year == b.Year, true
	case "semester", "sem":
		sa, sb := Semester{a.Year, a.Semester}, Semester{b.Year, b.Semester}
		return sa.Less(sb), sa == sb, true
	}
	return false, true, false
}

// SortPrograms sorts programs in place by the given orderings; unknown fields are ignored.
// The sort is stable so the catalog order breaks ties.
func SortPrograms(programs []Program, orderings []Ordering) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(programs, func(i, j int) bool {
		for _, ord := range orderings {
			less, equal, ok := programLess(ord.Field, programs[i], programs[j])
			if !ok || equal {
				continue
			}
			if ord.Ascending {
				return less
			}
			return !less
		}
		return false
	})
}
