package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LineContext is a target line from a config file plus up to two lines of
// surrounding context, for display next to a provenance record.
type LineContext struct {
	LineNumber int      // Line number of the target (1-based)
	Before     []string // Up to two lines preceding the target
	Target     string   // The line itself
	After      []string // Up to two lines following the target
	ErrorMsg   string   // Set when the file could not be read
}

// GetLineContext reads filePath and extracts lineNumber with context.
// Errors are reported in the result, never returned; a missing config file
// is an expected condition for a diagnostic tool.
func GetLineContext(filePath string, lineNumber int) LineContext {
	result := LineContext{LineNumber: lineNumber}

	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			filePath = strings.Replace(filePath, "~", home, 1)
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, len(lines))
		return result
	}

	result.Target = lines[lineNumber-1]

	start := lineNumber - 3
	if start < 0 {
		start = 0
	}
	result.Before = lines[start : lineNumber-1]

	end := lineNumber + 2
	if end > len(lines) {
		end = len(lines)
	}
	result.After = lines[lineNumber:end]

	return result
}
