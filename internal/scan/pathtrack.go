package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/descoped/script-utils/internal/model"
)

// tracker maintains the cumulative computed PATH and the entry table used
// for duplicate reporting. It owns the authoritative final PATH value once
// all files are processed.
type tracker struct {
	entries  []*model.PathEntry
	byPath   map[string]*model.PathEntry
	computed []string // canonical entries in current PATH order
}

func newTracker() *tracker {
	return &tracker{byPath: make(map[string]*model.PathEntry)}
}

// mutate applies PATH=<rhs> discovered at file:line. A $PATH reference on
// the right-hand side splices the current statically computed entries in
// place, without re-recording provenance; the live process PATH never
// enters the entry table. Command substitution voids the whole mutation.
func (t *tracker) mutate(r *Resolver, rhs, file string, lineNum int) {
	rhs = stripQuotes(trimTrailingShellNoise(rhs))
	if hasCommandSubstitution(rhs) {
		r.warnf("%s:%d: command substitution in PATH assignment not evaluated, mutation skipped", file, lineNum)
		return
	}

	var next []string
	for _, seg := range strings.Split(rhs, ":") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if seg == "$PATH" || seg == "${PATH}" {
			next = append(next, t.computed...)
			continue
		}

		expanded := r.expandVars(r.expandTilde(seg), file, lineNum)
		if expanded == "" {
			continue
		}
		canon := r.canonicalize(expanded, filepath.Dir(file))
		t.record(canon, file, lineNum)
		next = append(next, canon)
	}

	t.computed = next
	r.Env["PATH"] = strings.Join(t.computed, ":")
	r.log.Tracef("%s:%d: PATH is now %s", file, lineNum, r.Env["PATH"])
}

// record creates or increments the entry for a canonical path, stamping
// the provenance of this occurrence.
func (t *tracker) record(canon, file string, lineNum int) {
	prov := model.Provenance{File: file, Line: lineNum}
	if e, ok := t.byPath[canon]; ok {
		e.Count++
		e.Provenance = append(e.Provenance, prov)
		return
	}
	e := &model.PathEntry{
		Path:       canon,
		Count:      1,
		Provenance: []model.Provenance{prov},
		Missing:    !dirExists(canon),
	}
	t.byPath[canon] = e
	t.entries = append(t.entries, e)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
