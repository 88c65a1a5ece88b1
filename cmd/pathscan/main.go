package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"github.com/descoped/script-utils/internal/logging"
	"github.com/descoped/script-utils/internal/model"
	"github.com/descoped/script-utils/internal/scan"
	"github.com/descoped/script-utils/internal/tui"
)

func checkUpdate(currentVer string, explicit bool) {
	githubTag := &latest.GithubTag{
		Owner:      "descoped",
		Repository: "script-utils",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\nA new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("Download it from https://github.com/descoped/script-utils/releases")
	} else if explicit {
		fmt.Printf("You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	flags := pflag.NewFlagSet("pathscan", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pathscan [options] [file...]\n\n")
		fmt.Fprintf(os.Stderr, "pathscan statically resolves the PATH your shell builds from its config\n")
		fmt.Fprintf(os.Stderr, "files. It follows source directives, tracks every PATH mutation with its\n")
		fmt.Fprintf(os.Stderr, "file and line, and reports duplicates. Nothing is executed.\n\n")
		fmt.Fprintf(os.Stderr, "With no files, a built-in list of standard config files is scanned.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pathscan                 # Scan default config files, print report\n")
		fmt.Fprintf(os.Stderr, "  pathscan -v ~/.zshrc     # Trace one file line by line\n")
		fmt.Fprintf(os.Stderr, "  pathscan --json          # Output analysis as JSON\n")
		fmt.Fprintf(os.Stderr, "  pathscan --tui           # Browse entries interactively\n")
	}

	verboseFlag := flags.BoolP("verbose", "v", false, "Trace every processed line (secrets redacted)")
	jsonFlag := flags.BoolP("json", "j", false, "Output raw analysis data as JSON")
	outputFlag := flags.StringP("output", "o", "", "Save the report to the specified file")
	tuiFlag := flags.BoolP("tui", "t", false, "Browse the analysis in an interactive TUI")
	versionFlag := flags.BoolP("version", "V", false, "Print version information")
	updateFlag := flags.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		os.Exit(1)
	}

	if *helpFlag {
		flags.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("pathscan version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version, true)
		return
	}

	files := flags.Args()

	if *tuiFlag {
		runTuiMode(files)
		return
	}

	if *jsonFlag {
		runJSONMode(files)
		return
	}

	runReportMode(files, *outputFlag, *verboseFlag)
}

func runReportMode(files []string, outputFile string, verbose bool) {
	log := logging.Default(verbose)
	result := scan.New(log).Run(files)
	report := scan.GenerateReport(result, verbose)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		log.Infof("report saved to %s", outputFile)
		return
	}
	fmt.Println(report)
}

func runJSONMode(files []string) {
	// Warnings go to stderr so stdout stays parseable.
	log := logging.New(os.Stderr, false)
	result := scan.New(log).Run(files)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(result)
}

func runTuiMode(files []string) {
	m := tui.InitialModel(files)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
