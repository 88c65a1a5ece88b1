package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descoped/script-utils/internal/logging"
)

func newTestResolver(out *bytes.Buffer, verbose bool) *Resolver {
	return New(logging.New(out, verbose))
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// canon mirrors the resolver's canonicalization so expectations survive
// tmpdir symlinks (macOS /tmp).
func canon(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

func TestIrrelevantFileLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "noise.sh", `
# just a comment
alias ll='ls -l'
echo hello world
umask 022
`)

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	assert.Empty(t, result.Entries)
	assert.Equal(t, "", result.ComputedPath)
	assert.Empty(t, result.UndefinedVars)
}

func TestSelfSourceTerminatesWithOneCycleWarning(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "loop.sh", "")
	require.NoError(t, os.WriteFile(file, []byte("source "+file+"\n"), 0644))

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	cycles := 0
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "cycle") {
			cycles++
		}
	}
	assert.Equal(t, 1, cycles)
}

func TestTwoFileSourceCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sh")
	b := filepath.Join(dir, "b.sh")
	require.NoError(t, os.WriteFile(a, []byte("PATH=/cycle-a\nsource "+b+"\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("PATH=$PATH:/cycle-b\nsource "+a+"\n"), 0644))

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{a})

	cycles := 0
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "cycle") {
			cycles++
		}
	}
	assert.Equal(t, 1, cycles, "one cycle warning for the single repeated edge")
	assert.Equal(t, "/cycle-a:/cycle-b", result.ComputedPath)
	assert.Len(t, result.FilesVisited, 2)
}

func TestDuplicateEntryGetsBothProvenances(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "dup.sh", "PATH=/a:/b\nPATH=$PATH:/a\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	require.Len(t, result.Entries, 2)
	dupes := result.Duplicates()
	require.Len(t, dupes, 1)

	entry := dupes[0]
	assert.Equal(t, "/a", entry.Path)
	assert.Equal(t, 2, entry.Count)
	assert.True(t, entry.IsDuplicate)
	require.Len(t, entry.Provenance, 2)
	assert.Equal(t, 1, entry.Provenance[0].Line)
	assert.Equal(t, 2, entry.Provenance[1].Line)

	assert.Equal(t, "/a:/b:/a", result.ComputedPath)
}

func TestVerboseTraceNeverLeaksSecrets(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "secrets.sh", "export SECRET_TOKEN=abc123\nPATH=/safe\n")

	var out bytes.Buffer
	r := newTestResolver(&out, true)
	r.Run([]string{file})

	logged := out.String()
	assert.NotContains(t, logged, "abc123")
	assert.NotContains(t, logged, "TOKEN")
	assert.NotContains(t, logged, "SECRET")
	assert.Contains(t, logged, "[REDACTED]")
}

func TestUndefinedVariableInSourcePath(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "undef.sh", "source $FOO/extra.sh\nsource $FOO/more.sh\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	// Both sources are skipped: the expanded target does not exist.
	assert.Len(t, result.FilesVisited, 1)

	require.Len(t, result.UndefinedVars, 1)
	assert.Equal(t, "FOO", result.UndefinedVars[0].Name)
	assert.Equal(t, 2, result.UndefinedVars[0].Count)
}

func TestPathMutationIgnoresTrailingCommentAndCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "noise.sh", "PATH=/a:/b # add tools\nPATH=$PATH:/c; rehash\nEDITOR=vim # default\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	assert.Equal(t, "/a:/b:/c", result.ComputedPath)
	require.Len(t, result.Entries, 3)
	for _, e := range result.Entries {
		assert.NotContains(t, e.Path, "#")
		assert.NotContains(t, e.Path, ";")
	}
	assert.Equal(t, "vim", r.Env["EDITOR"])
}

func TestCommandSubstitutionInPathIsRefused(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "cmdsub.sh", "PATH=$(brew --prefix)/bin:$PATH\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	assert.Empty(t, result.Entries, "entry table must be unaffected")
	assert.Equal(t, "", result.ComputedPath)

	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "command substitution") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvalIsRefused(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "eval.sh", `eval "$(rbenv init -)"`+"\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	assert.Empty(t, result.Entries)
	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "eval") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSourceFollowsRelativeTargets(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "inner.sh", "PATH=/from-inner\n")
	outer := writeConfig(t, dir, "outer.sh", "source inner.sh\nPATH=$PATH:/from-outer\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{outer})

	assert.Equal(t, "/from-inner:/from-outer", result.ComputedPath)
	assert.Len(t, result.FilesVisited, 2)
}

func TestSourcedFileProcessedBeforeCurrentContinues(t *testing.T) {
	// Pre-order depth first: inner's mutation lands before outer's next line.
	dir := t.TempDir()
	inner := writeConfig(t, dir, "inner.sh", "PATH=$PATH:/second\n")
	outer := writeConfig(t, dir, "outer.sh", "PATH=/first\nsource "+inner+"\nPATH=$PATH:/third\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{outer})

	assert.Equal(t, "/first:/second:/third", result.ComputedPath)
}

func TestFileReachableFromTwoBranchesIsProcessedOnce(t *testing.T) {
	dir := t.TempDir()
	common := writeConfig(t, dir, "common.sh", "PATH=$PATH:/shared\n")
	writeConfig(t, dir, "x.sh", "source "+common+"\n")
	writeConfig(t, dir, "y.sh", "source "+common+"\n")
	main := writeConfig(t, dir, "main.sh", "source "+filepath.Join(dir, "x.sh")+"\nsource "+filepath.Join(dir, "y.sh")+"\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{main})

	// The visited set is permanent for the run: the second branch skips
	// common.sh instead of re-adding /shared.
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 1, result.Entries[0].Count)
	assert.Equal(t, "/shared", result.ComputedPath)
}

func TestMissingFileIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	good := writeConfig(t, dir, "good.sh", "PATH=/ok\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{filepath.Join(dir, "missing.sh"), good})

	assert.Equal(t, "/ok", result.ComputedPath)
	assert.NotEmpty(t, result.Diagnostics)
}

func TestTildeAndVariableExpansionInPathEntries(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.Mkdir(binDir, 0755))
	file := writeConfig(t, dir, "home.sh", "MYTOOLS=~/bin\nPATH=$MYTOOLS\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	r.Env["HOME"] = dir
	result := r.Run([]string{file})

	require.Len(t, result.Entries, 1)
	assert.Equal(t, canon(binDir), result.Entries[0].Path)
	assert.False(t, result.Entries[0].Missing)
}

func TestCanonicalizationDeduplicatesSpellings(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.Mkdir(binDir, 0755))
	// Same directory spelled two ways: via ~ and via an indirect segment.
	file := writeConfig(t, dir, "spellings.sh", "PATH=~/bin\nPATH=$PATH:"+dir+"/./bin\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	r.Env["HOME"] = dir
	result := r.Run([]string{file})

	require.Len(t, result.Entries, 1)
	assert.Equal(t, 2, result.Entries[0].Count)
}

func TestLivePathIsSeparateFromComputed(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "one.sh", "PATH=/only\n")

	var out bytes.Buffer
	r := newTestResolver(&out, false)
	result := r.Run([]string{file})

	assert.Equal(t, "/only", result.ComputedPath)
	assert.Equal(t, os.Getenv("PATH"), result.LivePath)
}
