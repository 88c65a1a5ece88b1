// Package scan statically resolves the PATH a shell would build from its
// startup files. It follows source directives recursively, simulates
// variable assignment and expansion, and tracks every PATH mutation with
// its originating file and line. Nothing is ever executed: config files
// are untrusted input, so command substitution and eval are refused.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/descoped/script-utils/internal/logging"
	"github.com/descoped/script-utils/internal/model"
)

// DefaultConfigFiles are scanned when the caller names no files, in the
// order a login shell would plausibly read them.
var DefaultConfigFiles = []string{
	"~/.bash_profile",
	"~/.bashrc",
	"~/.profile",
	"~/.zshenv",
	"~/.zprofile",
	"~/.zshrc",
	"~/.zlogin",
}

var assignRe = regexp.MustCompile(`^(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// Resolver owns all state of one analysis run: the environment snapshot,
// the visited-file set, the PATH entry table and the undefined-variable
// list. Runs never share state.
type Resolver struct {
	Env map[string]string

	log        *logging.Logger
	visited    map[string]bool // absolute paths, permanent for the run
	visitOrder []string
	undefined  map[string]int // referenced-but-never-assigned, name -> ref count
	diags      []string

	track *tracker
}

// New builds a Resolver seeded from the real process environment.
func New(log *logging.Logger) *Resolver {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return &Resolver{
		Env:       env,
		log:       log,
		visited:   make(map[string]bool),
		undefined: make(map[string]int),
		track:     newTracker(),
	}
}

// Run processes the given config files in order and returns the analysis.
// An empty list falls back to DefaultConfigFiles. Per-file problems are
// warnings; Run itself cannot fail.
func (r *Resolver) Run(files []string) model.AnalysisResult {
	if len(files) == 0 {
		files = DefaultConfigFiles
	}
	for _, f := range files {
		f = r.expandTilde(f)
		r.processFile(r.canonicalize(f, ""))
	}
	return r.result()
}

// processFile scans one config file line by line, dispatching assignments,
// source directives, conditionals and PATH mutations. Pre-order depth
// first: a sourced file is fully processed before the current file
// continues.
func (r *Resolver) processFile(path string) {
	if r.visited[path] {
		r.warnf("%s already processed, skipping (source cycle)", path)
		return
	}
	// Permanent for the run: a file reachable from two branches is
	// processed once.
	r.visited[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		r.warnf("cannot read %s: %v", path, err)
		return
	}
	r.visitOrder = append(r.visitOrder, path)
	r.log.Infof("scanning %s", path)

	lines := strings.Split(string(data), "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.log.Tracef("%s:%d: %s", path, i+1, line)

		if strings.HasPrefix(line, "if ") || line == "if" {
			i = r.handleConditional(lines, i, path)
			continue
		}
		r.dispatch(line, path, i+1)
	}
}

// dispatch classifies a single statement. Lines matching no class are
// ignored.
func (r *Resolver) dispatch(line, file string, lineNum int) {
	switch {
	case strings.HasPrefix(line, "eval ") || strings.HasPrefix(line, "eval("):
		r.warnf("%s:%d: refusing to evaluate eval statement", file, lineNum)

	case assignRe.MatchString(line):
		m := assignRe.FindStringSubmatch(line)
		if m[1] == "PATH" {
			r.track.mutate(r, m[2], file, lineNum)
		} else {
			r.handleAssign(m[1], m[2], file, lineNum)
		}

	case strings.HasPrefix(line, "source ") || strings.HasPrefix(line, ". "):
		r.handleSource(line, file, lineNum)
	}
}

// handleAssign simulates VAR=value on the environment snapshot.
func (r *Resolver) handleAssign(name, rhs, file string, lineNum int) {
	if hasCommandSubstitution(rhs) {
		r.warnf("%s:%d: command substitution in %s= not evaluated, assignment skipped", file, lineNum, name)
		return
	}
	value := r.expandVars(r.expandTilde(stripQuotes(trimTrailingShellNoise(rhs))), file, lineNum)
	r.Env[name] = value
	r.log.Tracef("%s:%d: set %s=%s", file, lineNum, name, value)
}

// handleSource resolves a source/. target and recurses into it.
func (r *Resolver) handleSource(line, file string, lineNum int) {
	rest := strings.TrimPrefix(line, "source ")
	rest = strings.TrimPrefix(rest, ". ")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}
	target := stripQuotes(fields[0])

	if hasCommandSubstitution(target) {
		r.warnf("%s:%d: command substitution in source target not evaluated, skipped", file, lineNum)
		return
	}

	target = r.expandVars(r.expandTilde(target), file, lineNum)
	resolved := r.canonicalize(target, filepath.Dir(file))

	if _, err := os.Stat(resolved); err != nil {
		r.warnf("%s:%d: sourced file %s not found, skipped", file, lineNum, resolved)
		return
	}
	r.processFile(resolved)
}

func (r *Resolver) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.diags = append(r.diags, msg)
	r.log.Warningf("%s", msg)
}

// noteUndefined records a reference to a variable that was never assigned.
func (r *Resolver) noteUndefined(name, file string, lineNum int) {
	r.undefined[name]++
	r.warnf("%s:%d: reference to undefined variable $%s, treated as empty", file, lineNum, name)
}

func (r *Resolver) result() model.AnalysisResult {
	entries := make([]model.PathEntry, len(r.track.entries))
	for i, e := range r.track.entries {
		e.IsDuplicate = e.Count > 1
		entries[i] = *e
	}

	var undef []model.VarRef
	for name, count := range r.undefined {
		undef = append(undef, model.VarRef{Name: name, Count: count})
	}
	sort.Slice(undef, func(i, j int) bool { return undef[i].Name < undef[j].Name })

	return model.AnalysisResult{
		Entries:       entries,
		ComputedPath:  strings.Join(r.track.computed, ":"),
		LivePath:      os.Getenv("PATH"),
		FilesVisited:  r.visitOrder,
		UndefinedVars: undef,
		Diagnostics:   r.diags,
	}
}
