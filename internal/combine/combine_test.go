package combine

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

func TestParseInput(t *testing.T) {
	tests := []struct {
		spec string
		want Input
	}{
		{"src", Input{Dir: "src", Extensions: []string{DefaultExtension}}},
		{"src:go", Input{Dir: "src", Extensions: []string{".go"}}},
		{"src:.go,md", Input{Dir: "src", Extensions: []string{".go", ".md"}}},
		{"src:", Input{Dir: "src", Extensions: []string{DefaultExtension}}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.spec))
		})
	}
}

func TestFilesConcatenatesWithHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.go"), []byte("package b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("nope"), 0644))

	var out bytes.Buffer
	log := logging.New(&out, false)

	got, err := Files([]Input{{Dir: dir, Extensions: []string{".go"}}}, log)
	require.NoError(t, err)

	assert.Contains(t, got, "# File: a.go")
	assert.Contains(t, got, "# File: sub/b.go")
	assert.Contains(t, got, "package a")
	assert.Contains(t, got, "package b")
	assert.NotContains(t, got, "nope")
}

func TestFilesMissingDirIsError(t *testing.T) {
	var out bytes.Buffer
	log := logging.New(&out, false)

	_, err := Files([]Input{{Dir: "/does/not/exist", Extensions: []string{".go"}}}, log)
	assert.Error(t, err)
}

func TestFilesMultipleExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("y"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("z"), 0644))

	var out bytes.Buffer
	log := logging.New(&out, false)

	got, err := Files([]Input{{Dir: dir, Extensions: []string{".go", ".md"}}}, log)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(got, "# File:"))
}
