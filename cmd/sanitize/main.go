package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/descoped/script-utils/internal/logging"
	"github.com/descoped/script-utils/internal/sanitize"
)

// Display order for the category summary.
var categoryLabels = []struct {
	key   string
	label string
}{
	{sanitize.CategoryAWS, "AWS Credentials"},
	{sanitize.CategoryAzure, "Azure Credentials"},
	{sanitize.CategoryAPI, "API Keys/Tokens"},
	{sanitize.CategoryJWT, "JWT Tokens"},
	{sanitize.CategoryPassword, "Passwords"},
	{sanitize.CategoryPrivate, "Private Keys"},
	{sanitize.CategoryGitHub, "GitHub Tokens"},
	{sanitize.CategoryGoogle, "Google Credentials"},
	{sanitize.CategoryGeneric, "Generic Secrets"},
}

func main() {
	flags := pflag.NewFlagSet("sanitize", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sanitize [options]\n\n")
		fmt.Fprintf(os.Stderr, "sanitize redacts secrets (cloud credentials, API keys, tokens, passwords,\n")
		fmt.Fprintf(os.Stderr, "private keys) from text content before it is shared or logged.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sanitize -i app.log -o app-clean.log\n")
		fmt.Fprintf(os.Stderr, "  kubectl logs mypod | sanitize\n")
	}

	inputFlag := flags.StringP("input", "i", "", "Input file (defaults to stdin)")
	outputFlag := flags.StringP("output", "o", "", "Output file (defaults to stdout)")
	verboseFlag := flags.BoolP("verbose", "v", false, "Show detailed information")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		os.Exit(1)
	}
	if *helpFlag {
		flags.Usage()
		return
	}

	// Status goes to stderr: stdout may carry the sanitized content.
	log := logging.New(os.Stderr, *verboseFlag)

	var content []byte
	var err error
	if *inputFlag != "" {
		content, err = os.ReadFile(*inputFlag)
		if err != nil {
			log.Errorf("cannot read input file %s: %v", *inputFlag, err)
			os.Exit(1)
		}
		log.Infof("reading from file: %s", *inputFlag)
	} else {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Errorf("cannot read stdin: %v", err)
			os.Exit(1)
		}
		log.Infof("reading from stdin")
	}

	log.Infof("scanning for secrets...")
	sanitized, stats := sanitize.Redact(string(content))

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, []byte(sanitized), 0644); err != nil {
			log.Errorf("cannot write output file %s: %v", *outputFlag, err)
			os.Exit(1)
		}
		log.Infof("sanitized content written to: %s", *outputFlag)
	} else {
		os.Stdout.WriteString(sanitized)
	}

	total := stats.Total()
	log.Infof("found %d potential secrets", total)

	if *verboseFlag || total > 0 {
		log.Infof("secret types detected:")
		for _, c := range categoryLabels {
			if stats[c.key] > 0 {
				log.Infof("  - %s: %d", c.label, stats[c.key])
			}
		}
		// Anything outside the known display order still gets reported.
		var extra []string
		for k := range stats {
			if !isKnownCategory(k) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			log.Infof("  - %s: %d", k, stats[k])
		}
	}
}

func isKnownCategory(key string) bool {
	for _, c := range categoryLabels {
		if c.key == key {
			return true
		}
	}
	return false
}
