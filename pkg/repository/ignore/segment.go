package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pit/pit/pkg/repository/scpath"
)

const (
	// CommentPrefix starts a comment line in an ignore file.
	CommentPrefix = "#"
	// DefaultSource is the ignore file read from the repository root.
	DefaultSource = ".gitignore"
)

// SegmentSet implements the status engine's ignore rule: the repository's
// source directory plus every non-comment, non-blank line of a root-level
// .gitignore, each matched as an exact path component rather than a glob.
// The status engine's ignore rule never grows glob support.
type SegmentSet struct {
	segments map[string]struct{}
}

// NewSegmentSet builds a SegmentSet from directory names that are always
// ignored (typically just the repository's source directory) plus every
// line of ignoreFileContents, one segment per line.
func NewSegmentSet(always []string, ignoreFileContents string) *SegmentSet {
	s := &SegmentSet{segments: make(map[string]struct{})}
	for _, a := range always {
		s.segments[a] = struct{}{}
	}
	for _, line := range strings.Split(ignoreFileContents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, string(CommentPrefix)) {
			continue
		}
		s.segments[line] = struct{}{}
	}
	return s
}

// LoadSegmentSet reads a root .gitignore from repoRoot, if one exists, and
// combines its lines with the directory names that are always ignored.
func LoadSegmentSet(repoRoot scpath.RepositoryPath, always ...string) *SegmentSet {
	data, err := os.ReadFile(repoRoot.Join(DefaultSource).String())
	if err != nil {
		return NewSegmentSet(always, "")
	}
	return NewSegmentSet(always, string(data))
}

// MatchesAnySegment reports whether any path component of path exactly
// equals one of the set's ignored segments.
func (s *SegmentSet) MatchesAnySegment(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if _, ok := s.segments[part]; ok {
			return true
		}
	}
	return false
}
