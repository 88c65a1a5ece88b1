package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

var varRefRe = regexp.MustCompile(`\$(?:([A-Za-z_][A-Za-z0-9_]*)|\{([A-Za-z_][A-Za-z0-9_]*)\})`)

// expandVars substitutes $VAR and ${VAR} references from the environment
// snapshot, left to right, in a single pass: substituted values are not
// rescanned. An unresolvable reference expands to the empty string and is
// recorded for the final summary.
func (r *Resolver) expandVars(s, file string, lineNum int) string {
	return varRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		name := strings.Trim(ref[1:], "{}")
		if value, ok := r.Env[name]; ok {
			return value
		}
		r.noteUndefined(name, file, lineNum)
		return ""
	})
}

// expandTilde rewrites a leading ~ to the snapshot's HOME.
func (r *Resolver) expandTilde(s string) string {
	home := r.Env["HOME"]
	if home == "" {
		return s
	}
	if s == "~" {
		return home
	}
	if strings.HasPrefix(s, "~/") {
		return home + s[1:]
	}
	return s
}

// canonicalize makes path absolute (relative to base, or the working
// directory when base is empty) and resolves symlinks so textually
// different spellings of the same directory compare equal. A path that
// does not exist is still cleaned, just not symlink-resolved.
func (r *Resolver) canonicalize(path, base string) string {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		if base != "" {
			path = filepath.Join(base, path)
		} else if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	path = filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// trimTrailingShellNoise cuts a trailing comment ("PATH=/a # tools") or a
// fused follow-up command ("PATH=$PATH:/c; rehash") off an assignment value.
// Quoted delimiters are kept: they are part of the value, not syntax.
func trimTrailingShellNoise(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return strings.TrimSpace(s[:i])
		case c == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t'):
			return strings.TrimSpace(s[:i])
		}
	}
	return strings.TrimSpace(s)
}

// stripQuotes removes one level of matching single or double quotes.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// hasCommandSubstitution detects $(...) and backtick constructs. These are
// never evaluated: doing so would execute arbitrary shell code from an
// untrusted config file.
func hasCommandSubstitution(s string) bool {
	return strings.Contains(s, "$(") || strings.Contains(s, "`")
}
