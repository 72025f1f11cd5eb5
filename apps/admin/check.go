package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core/catalog"
)

func (cli *commandLine) check(dir string, strict bool) error {
	src, lk, err := cli.newSource(dir).Load(context.Background())
	if err != nil {
		return errors.Wrapf(err, "loading %s", dir)
	}

	stats := catalog.Build(src, lk, cli.catalogOptions()).Stats()
	_, _ = fmt.Fprintf(cli.out, "%d subjects, %d programs, %d materials (%d notes, %d syllabi) over %d semesters\n",
		stats.Subjects, stats.Programs, stats.Materials, stats.Notes, stats.Syllabi, stats.Semesters)

	issues := catalog.Audit(src, lk)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(cli.out, "no issues found")
		return nil
	}
	_, _ = fmt.Fprintf(cli.out, "%d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(cli.out, "  %s\n", issue)
	}
	if strict {
		return errIssues
	}
	return nil
}
