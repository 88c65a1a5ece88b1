// Package combine concatenates files from directory trees into a single
// annotated document, one "# File:" header per file.
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/descoped/script-utils/internal/logging"
)

// DefaultExtension is used when an input spec names no extensions.
const DefaultExtension = ".py"

// Input is one "DIR[:ext1,ext2]" argument.
type Input struct {
	Dir        string
	Extensions []string
}

// ParseInput splits an input spec into its directory and extension list.
func ParseInput(spec string) Input {
	dir, extPart, ok := strings.Cut(spec, ":")
	in := Input{Dir: dir}
	if !ok || extPart == "" {
		in.Extensions = []string{DefaultExtension}
		return in
	}
	for _, ext := range strings.Split(extPart, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		in.Extensions = append(in.Extensions, ext)
	}
	return in
}

// Files walks every input directory and returns the concatenated content
// of all matching files. Unreadable files are logged and skipped; a
// missing input directory is an error.
func Files(inputs []Input, log *logging.Logger) (string, error) {
	var parts []string

	for _, in := range inputs {
		err := filepath.WalkDir(in.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !matchesExtension(d.Name(), in.Extensions) {
				return nil
			}

			content, readErr := os.ReadFile(path)
			if readErr != nil {
				log.Warningf("cannot read %s, skipped: %v", path, readErr)
				return nil
			}

			rel, relErr := filepath.Rel(in.Dir, path)
			if relErr != nil {
				rel = path
			}
			parts = append(parts, fmt.Sprintf("# File: %s\n\n%s\n\n", filepath.ToSlash(rel), content))
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("walking %s: %w", in.Dir, err)
		}
	}

	return strings.Join(parts, "\n"), nil
}

func matchesExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
