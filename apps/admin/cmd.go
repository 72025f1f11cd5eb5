package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
	"github.com/trezcool/labhub/core/viva"
	llmsvc "github.com/trezcool/labhub/services/llm"
	"github.com/trezcool/labhub/storage/filesystem"
)

var (
	errHelp   = errors.New("help provided")
	errIssues = errors.New("catalog sources have issues")
)

type commandLine struct {
	conf *core.Config
	out  io.Writer

	newSource    func(dir string) catalog.Source // mockable
	newGenerator func() (viva.Generator, error) // mockable
}

func newCommandLine(conf *core.Config, out io.Writer) *commandLine {
	return &commandLine{
		conf: conf,
		out:  out,
		newSource: func(dir string) catalog.Source {
			return filesystem.NewSource(dir)
		},
		newGenerator: func() (viva.Generator, error) {
			llm, err := llmsvc.NewProvider(conf.LLM)
			if err != nil {
				return nil, err
			}
			return viva.NewService(llm), nil
		},
	}
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  check [-dir DIR] [-strict] - build the catalog and list the problems of its sources")
	_, _ = fmt.Fprintln(cli.out, "  viva -program ID [-dir DIR] - generate viva questions for a program")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkCmd := flag.NewFlagSet("check", flag.ContinueOnError)
	checkCmd.SetOutput(cli.out)
	checkDir := checkCmd.String("dir", cli.conf.Catalog.DataDir, "The catalog data directory.")
	checkStrict := checkCmd.Bool("strict", false, "Fail when the sources have issues.")

	vivaCmd := flag.NewFlagSet("viva", flag.ContinueOnError)
	vivaCmd.SetOutput(cli.out)
	vivaDir := vivaCmd.String("dir", cli.conf.Catalog.DataDir, "The catalog data directory.")
	vivaProgram := vivaCmd.String("program", "", "The program's id.")

	switch args[1] {
	case "check":
		if err := checkCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.check(*checkDir, *checkStrict)
	case "viva":
		if err := vivaCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *vivaProgram == "" {
			vivaCmd.Usage()
			return errHelp
		}
		return cli.viva(*vivaDir, *vivaProgram)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) catalogOptions() catalog.Options {
	return catalog.Options{
		DefaultYear:     cli.conf.Catalog.DefaultYear,
		DefaultSemester: cli.conf.Catalog.DefaultSemester,
	}
}
