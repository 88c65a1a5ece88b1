package model

// Version is reported by --version and used for the release check.
const Version = "0.3.0"

// Provenance records where a PATH entry (or a reference to it) came from.
type Provenance struct {
	File string `json:"file"` // Config file that added the entry
	Line int    `json:"line"` // Line number within that file
}

// PathEntry is one unique directory that appeared in a PATH assignment.
// Uniqueness is decided after canonicalization, so "~/bin" and
// "/home/user/bin" land on the same entry.
type PathEntry struct {
	Path        string       `json:"path"`        // Canonical directory path
	Count       int          `json:"count"`       // How many times it was added
	Provenance  []Provenance `json:"provenance"`  // Every (file, line) that added it
	Missing     bool         `json:"missing"`     // Directory does not exist on disk
	IsDuplicate bool         `json:"isDuplicate"` // Count > 1
}

// First returns the provenance of the entry's first appearance.
func (e PathEntry) First() Provenance {
	if len(e.Provenance) == 0 {
		return Provenance{}
	}
	return e.Provenance[0]
}

// VarRef is a variable that was referenced but never assigned.
type VarRef struct {
	Name  string `json:"name"`
	Count int    `json:"count"` // Number of references seen
}

// AnalysisResult is everything a single resolver run produced.
type AnalysisResult struct {
	Entries       []PathEntry `json:"entries"`       // In first-appearance order
	ComputedPath  string      `json:"computedPath"`  // Statically computed final PATH
	LivePath      string      `json:"livePath"`      // PATH of the running process
	FilesVisited  []string    `json:"filesVisited"`  // Absolute paths, visit order
	UndefinedVars []VarRef    `json:"undefinedVars"` // Sorted by name
	Diagnostics   []string    `json:"diagnostics"`   // Warnings accumulated during the walk
}

// Duplicates returns the entries that were added more than once.
func (r AnalysisResult) Duplicates() []PathEntry {
	var dupes []PathEntry
	for _, e := range r.Entries {
		if e.Count > 1 {
			dupes = append(dupes, e)
		}
	}
	return dupes
}
