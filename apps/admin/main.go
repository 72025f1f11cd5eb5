package main

import (
	"log"
	"os"

	"github.com/trezcool/labhub/core"
)

func main() {
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.LoadConfig()
	if err != nil {
		std.Fatalf("%+v", err)
	}

	// start CLI
	cli := newCommandLine(conf, os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
