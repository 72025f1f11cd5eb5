// Package filesystem loads the raw catalog records from a data directory:
//
//	<dir>/lookups.json                          {"colors": {...}, "shortTitles": {...}}
//	<dir>/materials.json                        {"materials": [...]}
//	<dir>/programs.json                         {"programs": [...]} (legacy flat list)
//	<dir>/year-<Y>/sem-<S>.json                 {"subjects": [...]}
//	<dir>/year-<Y>/sem-<S>/<ID>/subject.json    a single subject
//	<dir>/year-<Y>/sem-<S>/<ID>/programs.json   [...] programs of subject <ID>
//	<dir>/year-<Y>/sem-<S>/<ID>/materials.json  [...] materials of subject <ID>
//
// Every file may also be written in YAML (.yaml or .yml).
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
)

const maxConcurrentReads = 8

var (
	yearDirRegex = regexp.MustCompile(`^year-(\d+)$`)
	semRegex     = regexp.MustCompile(`^sem-(\d+)$`)
)

type (
	subjectsFile struct {
		Subjects []catalog.RawSubject `json:"subjects" yaml:"subjects"`
	}

	programsFile struct {
		Programs []catalog.RawProgram `json:"programs" yaml:"programs"`
	}

	materialsFile struct {
		Materials []catalog.RawMaterial `json:"materials" yaml:"materials"`
	}

	// semesterData is everything found for one (year, semester), in file order.
	semesterData struct {
		sem       catalog.Semester
		grouped   []catalog.RawSubject
		subjects  []subjectDir
		groupPath string
	}

	subjectDir struct {
		path      string
		id        string
		subject   *catalog.RawSubject
		programs  []catalog.RawProgram
		materials []catalog.RawMaterial
	}
)

type Source struct {
	dir string
}

var _ catalog.Source = (*Source)(nil)

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Dir() string { return s.dir }

// Load reads the whole data directory. Files are read concurrently but assembled in a fixed
// order (semesters, then grouped files before subject directories, then directory names)
// so the result only depends on the directory content.
func (s *Source) Load(ctx context.Context) (catalog.Sources, catalog.Lookups, error) {
	var src catalog.Sources
	var lk catalog.Lookups

	fi, err := os.Stat(s.dir)
	if err != nil {
		return src, lk, core.NewConfigError(errors.Wrap(err, "opening data directory"))
	}
	if !fi.IsDir() {
		return src, lk, core.NewConfigError(errors.Errorf("%s is not a directory", s.dir))
	}

	semesters, err := s.scan()
	if err != nil {
		return src, lk, err
	}

	var (
		legacyPrograms  programsFile
		legacyMaterials materialsFile
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	decodeOptional := func(base string, v interface{}) {
		g.Go(func() error {
			path, err := findFile(s.dir, base)
			if err != nil || path == "" {
				return err
			}
			return decodeFile(path, v)
		})
	}
	decodeOptional("lookups", &lk)
	decodeOptional("programs", &legacyPrograms)
	decodeOptional("materials", &legacyMaterials)

	for _, sd := range semesters {
		sd := sd
		if sd.groupPath != "" {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				var f subjectsFile
				if err := decodeFile(sd.groupPath, &f); err != nil {
					return err
				}
				sd.grouped = f.Subjects
				return nil
			})
		}
		for i := range sd.subjects {
			sub := &sd.subjects[i]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return loadSubjectDir(sub)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return catalog.Sources{}, catalog.Lookups{}, err
	}

	for _, sd := range semesters {
		grp := catalog.SubjectGroup{Year: sd.sem.Year, Semester: sd.sem.Semester}
		grp.Subjects = append(grp.Subjects, sd.grouped...)
		for _, sub := range sd.subjects {
			if sub.subject != nil {
				grp.Subjects = append(grp.Subjects, *sub.subject)
			}
			src.Programs = append(src.Programs, sub.programs...)
			src.Materials = append(src.Materials, sub.materials...)
		}
		src.Groups = append(src.Groups, grp)
	}
	src.Programs = append(src.Programs, legacyPrograms.Programs...)
	src.Materials = append(src.Materials, legacyMaterials.Materials...)
	return src, lk, nil
}

// scan walks the year-<Y> directories and lists what each semester holds.
func (s *Source) scan() ([]*semesterData, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading data directory")
	}

	bySem := make(map[catalog.Semester]*semesterData)
	for _, yearEntry := range entries {
		m := yearDirRegex.FindStringSubmatch(yearEntry.Name())
		if !yearEntry.IsDir() || m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		if year < core.MinYear || year > core.MaxYear {
			return nil, core.NewConfigError(errors.Errorf("%s: year out of range", yearEntry.Name()))
		}

		yearDir := filepath.Join(s.dir, yearEntry.Name())
		semEntries, err := os.ReadDir(yearDir)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", yearDir)
		}
		for _, semEntry := range semEntries {
			name := semEntry.Name()
			if !semEntry.IsDir() {
				if !isDataFile(name) {
					continue
				}
				name = trimExt(name)
			}
			sm := semRegex.FindStringSubmatch(name)
			if sm == nil {
				continue
			}
			semester, _ := strconv.Atoi(sm[1])
			if semester < core.MinSemester || semester > core.MaxSemester {
				return nil, core.NewConfigError(errors.Errorf("%s/%s: semester out of range", yearEntry.Name(), semEntry.Name()))
			}

			key := catalog.Semester{Year: year, Semester: semester}
			sd, ok := bySem[key]
			if !ok {
				sd = &semesterData{sem: key}
				bySem[key] = sd
			}
			path := filepath.Join(yearDir, semEntry.Name())
			if semEntry.IsDir() {
				subjects, err := scanSubjectDirs(path)
				if err != nil {
					return nil, err
				}
				sd.subjects = append(sd.subjects, subjects...)
			} else if sd.groupPath == "" {
				sd.groupPath = path
			} else {
				return nil, core.NewConfigError(fmt.Errorf("%s and %s define the same semester", sd.groupPath, path))
			}
		}
	}

	semesters := make([]*semesterData, 0, len(bySem))
	for _, sd := range bySem {
		semesters = append(semesters, sd)
	}
	sort.Slice(semesters, func(i, j int) bool { return semesters[i].sem.Less(semesters[j].sem) })
	return semesters, nil
}

func scanSubjectDirs(semDir string) ([]subjectDir, error) {
	entries, err := os.ReadDir(semDir) // sorted by name
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", semDir)
	}
	subjects := make([]subjectDir, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			subjects = append(subjects, subjectDir{path: filepath.Join(semDir, e.Name()), id: e.Name()})
		}
	}
	return subjects, nil
}

// loadSubjectDir reads a subject directory. Records inside it belong to the subject
// named by the directory, whatever subjectId they declare.
func loadSubjectDir(sub *subjectDir) error {
	path, err := findFile(sub.path, "subject")
	if err != nil {
		return err
	}
	if path != "" {
		var raw catalog.RawSubject
		if err := decodeFile(path, &raw); err != nil {
			return err
		}
		if core.CleanString(raw.ID) == "" {
			raw.ID = sub.id
		}
		sub.subject = &raw
	}

	if path, err = findFile(sub.path, "programs"); err != nil {
		return err
	} else if path != "" {
		if err := decodeFile(path, &sub.programs); err != nil {
			return err
		}
		for i := range sub.programs {
			sub.programs[i].SubjectID = sub.id
		}
	}

	if path, err = findFile(sub.path, "materials"); err != nil {
		return err
	} else if path != "" {
		if err := decodeFile(path, &sub.materials); err != nil {
			return err
		}
		for i := range sub.materials {
			sub.materials[i].SubjectID = sub.id
		}
	}
	return nil
}
