package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/descoped/script-utils/internal/combine"
	"github.com/descoped/script-utils/internal/logging"
)

func main() {
	flags := pflag.NewFlagSet("combine", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: combine -i DIR[:ext1,ext2] [-i ...] [options]\n\n")
		fmt.Fprintf(os.Stderr, "combine concatenates files with the given extensions from directory\n")
		fmt.Fprintf(os.Stderr, "trees into one document, each file preceded by a '# File:' header.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  combine -i src:go,md -o bundle.txt\n")
		fmt.Fprintf(os.Stderr, "  combine -i scripts            # defaults to %s files, stdout\n", combine.DefaultExtension)
	}

	inputFlags := flags.StringArrayP("input", "i", nil, "Input directory and extensions (e.g., SOURCEDIR:ext1,ext2)")
	outputFlag := flags.StringP("output-file", "o", "", "Name of the output file (defaults to stdout)")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		os.Exit(1)
	}
	if *helpFlag {
		flags.Usage()
		return
	}
	if len(*inputFlags) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one --input is required")
		flags.Usage()
		os.Exit(1)
	}

	log := logging.New(os.Stderr, false)

	inputs := make([]combine.Input, 0, len(*inputFlags))
	for _, spec := range *inputFlags {
		inputs = append(inputs, combine.ParseInput(spec))
	}

	content, err := combine.Files(inputs, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, []byte(content), 0644); err != nil {
			log.Errorf("cannot write %s: %v", *outputFlag, err)
			os.Exit(1)
		}
		log.Infof("combined files have been written to %s", *outputFlag)
		return
	}
	os.Stdout.WriteString(content)
}
