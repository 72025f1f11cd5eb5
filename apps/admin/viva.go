package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core/catalog"
	"github.com/trezcool/labhub/core/viva"
)

func (cli *commandLine) viva(dir, programID string) error {
	src, lk, err := cli.newSource(dir).Load(context.Background())
	if err != nil {
		return errors.Wrapf(err, "loading %s", dir)
	}
	p, err := catalog.Build(src, lk, cli.catalogOptions()).Program(programID)
	if err != nil {
		return errors.Wrapf(err, "program %q", programID)
	}

	gen, err := cli.newGenerator()
	if err != nil {
		return errors.Wrap(err, "setting up the viva generator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.conf.LLM.Timeout)
	defer cancel()
	set, err := gen.Generate(ctx, viva.Request{Aim: p.Aim, Code: p.Code})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cli.out, "%s (%s)\n\n", p.Title, p.Language)
	for i, q := range set.Questions {
		_, _ = fmt.Fprintf(cli.out, "%d. %s\n   %s\n\n", i+1, q.Question, q.Answer)
	}
	return nil
}
