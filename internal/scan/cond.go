package scan

import (
	"os"
	"strings"
)

// handleConditional processes an `if <test>; then ... fi` block starting at
// lines[start]. Only the closed set of test primitives a config file
// realistically uses is evaluated (-f, -e, -d, -n, -z, =, ==, !=); anything
// else degrades to a warning and the block is skipped. The else branch is
// parsed only to find its extent, never executed. Returns the index of the
// block's last line.
func (r *Resolver) handleConditional(lines []string, start int, file string) int {
	end, tokens := r.collectBlock(lines, start)
	if tokens == nil {
		r.warnf("%s:%d: unterminated if block, skipping rest of file", file, start+1)
		return end
	}

	cond := strings.TrimSpace(strings.TrimPrefix(tokens[0].text, "if"))
	pass, supported := r.evalCondition(cond, file, start+1)
	if !supported {
		r.warnf("%s:%d: unsupported condition %q, skipping block", file, start+1, cond)
		return end
	}
	if !pass {
		r.log.Tracef("%s:%d: condition %s is false, skipping block", file, start+1, cond)
		return end
	}

	// Execute the then branch. The else branch is skipped by contract.
	depth := 0
	for _, tok := range tokens[1:] {
		stmt := stripThenKeyword(tok.text)
		switch {
		case depth > 0:
			// Inside a nested conditional being skipped.
			if strings.HasPrefix(stmt, "if ") {
				depth++
			} else if stmt == "fi" {
				depth--
			}
		case strings.HasPrefix(stmt, "if "):
			r.warnf("%s:%d: nested conditional not supported, skipping inner block", file, tok.line)
			depth++
		case stmt == "else" || strings.HasPrefix(stmt, "else ") || strings.HasPrefix(stmt, "elif "):
			return end
		case stmt == "fi" || stmt == "":
			// structural tokens
		default:
			r.dispatch(stmt, file, tok.line)
		}
	}
	return end
}

// stripThenKeyword drops a leading "then" keyword so fused statements
// ("then source x", "then if ...") classify the same as bare ones.
func stripThenKeyword(stmt string) string {
	if stmt == "then" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(stmt, "then "))
}

type blockToken struct {
	text string
	line int // 1-based line number the statement came from
}

// collectBlock finds the extent of an if block and flattens it into
// semicolon/newline separated statement tokens. The first token is the
// "if <cond>" header. Returns (lastLineIdx, nil) when no matching fi is
// found before EOF.
func (r *Resolver) collectBlock(lines []string, start int) (int, []blockToken) {
	depth := 0
	var tokens []blockToken

	for j := start; j < len(lines); j++ {
		for _, part := range strings.Split(lines[j], ";") {
			part = strings.TrimSpace(part)
			if part == "" || strings.HasPrefix(part, "#") {
				continue
			}
			// "then source x" style fusion keeps the statement visible
			// to the executor above, but depth counts need the bare
			// keyword stripped first.
			bare := stripThenKeyword(part)
			if strings.HasPrefix(bare, "if ") {
				depth++
			} else if bare == "fi" {
				depth--
			}
			tokens = append(tokens, blockToken{text: part, line: j + 1})
		}
		if depth == 0 && len(tokens) > 0 {
			return j, tokens
		}
	}
	return len(lines) - 1, nil
}

// evalCondition evaluates a restricted shell test. The second return value
// is false when the condition uses anything outside the supported set.
func (r *Resolver) evalCondition(cond string, file string, lineNum int) (bool, bool) {
	cond = strings.TrimSpace(cond)
	switch {
	case strings.HasPrefix(cond, "[[") && strings.HasSuffix(cond, "]]"):
		cond = strings.TrimSpace(cond[2 : len(cond)-2])
	case strings.HasPrefix(cond, "[") && strings.HasSuffix(cond, "]"):
		cond = strings.TrimSpace(cond[1 : len(cond)-1])
	case strings.HasPrefix(cond, "test "):
		cond = strings.TrimSpace(strings.TrimPrefix(cond, "test "))
	default:
		return false, false
	}

	if hasCommandSubstitution(cond) {
		return false, false
	}

	fields := strings.Fields(cond)
	expand := func(s string) string {
		return r.expandVars(r.expandTilde(stripQuotes(s)), file, lineNum)
	}

	switch len(fields) {
	case 2:
		arg := expand(fields[1])
		switch fields[0] {
		case "-f":
			info, err := os.Stat(arg)
			return err == nil && !info.IsDir(), true
		case "-e":
			_, err := os.Stat(arg)
			return err == nil, true
		case "-d":
			info, err := os.Stat(arg)
			return err == nil && info.IsDir(), true
		case "-n":
			return arg != "", true
		case "-z":
			return arg == "", true
		}
	case 3:
		left, right := expand(fields[0]), expand(fields[2])
		switch fields[1] {
		case "=", "==":
			return left == right, true
		case "!=":
			return left != right, true
		}
	}
	return false, false
}
