// Package sanitize identifies and redacts secrets in text content: cloud
// credentials, API keys, tokens, passwords and private key blocks. It backs
// the sanitize CLI and the verbose-trace redaction of the pathscan logger.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stats counts redactions per category. Keys are the Category* constants.
type Stats map[string]int

// Total returns the number of redactions across all categories.
func (s Stats) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

// Redact replaces secrets in content with bracketed markers and reports
// how many redactions of each category were made.
func Redact(content string) (string, Stats) {
	stats := Stats{}

	content, privateCount := redactPrivateKeys(content)
	if privateCount > 0 {
		stats[CategoryPrivate] = privateCount
	}

	// Structured JSON gets a key-aware pass before the regex cascade.
	if jsonContent, jsonCount := redactJSON(content); jsonCount > 0 {
		content = jsonContent
		stats[CategoryAPI] += jsonCount
	}

	for _, p := range patterns {
		matches := p.re.FindAllString(content, -1)
		n := 0
		for _, m := range matches {
			if marker.MatchString(m) {
				continue // region already carries a marker from an earlier pattern
			}
			n++
		}
		if n > 0 {
			stats[p.category] += n
		}
		content = p.re.ReplaceAllString(content, p.repl)
	}

	return content, stats
}

// redactPrivateKeys elides the body of PEM private key blocks, keeping the
// BEGIN/END armor lines so the reader still sees that a key was there.
func redactPrivateKeys(content string) (string, int) {
	count := 0
	inKey := false
	var out []string

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.Contains(line, "BEGIN PRIVATE KEY") || strings.Contains(line, "BEGIN RSA PRIVATE KEY"):
			inKey = true
			out = append(out, line, "[PRIVATE-KEY]")
			count++
		case strings.Contains(line, "END PRIVATE KEY") || strings.Contains(line, "END RSA PRIVATE KEY"):
			inKey = false
			out = append(out, line)
		case inKey:
			// body lines are dropped
		default:
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n"), count
}

var secretKeyWords = []string{"secret", "key", "token", "password", "auth", "credential"}

// redactJSON parses content as a JSON object and masks string values whose
// keys look secret-bearing. Non-JSON content passes through untouched.
func redactJSON(content string) (string, int) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return content, 0
	}

	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return content, 0
	}

	count := redactJSONValue(data)
	if count == 0 {
		return content, 0
	}

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return content, 0
	}
	return string(pretty), count
}

func redactJSONValue(v any) int {
	count := 0
	switch obj := v.(type) {
	case map[string]any:
		for key, value := range obj {
			lower := strings.ToLower(key)
			isSecretKey := false
			for _, word := range secretKeyWords {
				if strings.Contains(lower, word) {
					isSecretKey = true
					break
				}
			}

			if s, ok := value.(string); ok && isSecretKey && len(s) >= 10 {
				markerType := "API-KEY"
				switch {
				case strings.Contains(lower, "password"):
					markerType = "PASSWORD"
				case strings.Contains(lower, "secret"):
					markerType = "SECRET"
				case strings.Contains(lower, "token"):
					markerType = "TOKEN"
				case strings.Contains(lower, "auth"):
					markerType = "AUTH"
				}
				obj[key] = "[" + markerType + "]"
				count++
				continue
			}
			count += redactJSONValue(value)
		}
	case []any:
		for _, item := range obj {
			count += redactJSONValue(item)
		}
	}
	return count
}

var (
	// Assignment to a secret-looking variable: the name itself leaks what
	// the value is, so both sides are masked.
	lineAssignRe = regexp.MustCompile(`(?i)[A-Za-z0-9_]*(?:secret|token|password|passwd|api_?key|credential|auth)[A-Za-z0-9_]*\s*=\s*(?:"[^"]*"|'[^']*'|\S+)`)
	// Leftover secret-looking words outside assignments.
	lineWordRe = regexp.MustCompile(`[A-Za-z0-9_]*(?:SECRET|TOKEN|PASSWORD|PASSWD)[A-Za-z0-9_]*`)
)

// RedactLine masks secret-looking assignments and bare credential words in
// a single log line. Unlike Redact, the variable NAME is masked too: a
// verbose trace must not echo fragments like TOKEN or SECRET at all.
func RedactLine(line string) string {
	line = lineAssignRe.ReplaceAllString(line, "[REDACTED]=[REDACTED]")
	return lineWordRe.ReplaceAllString(line, "[REDACTED]")
}
