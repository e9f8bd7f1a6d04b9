package refs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-pit/pit/pkg/common/fileops"
	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/repository/scpath"
	"github.com/go-pit/pit/pkg/repository/sourcerepo"
)

const (
	// SymbolicRefPrefix is the prefix for symbolic references
	SymbolicRefPrefix = "ref: "

	// MaxRefDepth is the maximum depth for resolving symbolic references
	MaxRefDepth = 10
)

// RefManager handles Git references (refs) - human-readable names for commits
type RefManager struct {
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager creates a new reference manager for the given repository
func NewRefManager(repo sourcerepo.Repository) *RefManager {
	sourceDir := repo.SourceDirectory()
	return &RefManager{
		refsPath: sourceDir.RefsPath(),
		headPath: sourceDir.HeadPath(),
	}
}

// defaultHeadBranch is the branch HEAD points at in a freshly initialized
// repository. Kept as a literal (rather than importing pkg/refs/branch) to
// avoid an import cycle; pkg/refs/branch.DefaultBranch carries the same
// value.
const defaultHeadBranch = "main"

// Init initializes the ref manager by creating the refs directory and HEAD file
func (rm *RefManager) Init() error {
	if err := os.MkdirAll(rm.refsPath.String(), 0755); err != nil {
		return fmt.Errorf("failed to create refs directory: %w", err)
	}

	defaultRef := []byte("ref: refs/heads/" + defaultHeadBranch + "\n")
	if err := fileops.AtomicWrite(rm.headPath.ToAbsolutePath(), defaultRef, 0644); err != nil {
		return fmt.Errorf("failed to create HEAD file: %w", err)
	}

	return nil
}

// ReadRef reads a reference and returns its content
func (rm *RefManager) ReadRef(ref RefPath) (string, error) {
	fullPath := rm.resolveReferencePath(ref)

	data, err := os.ReadFile(fullPath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("ref %s not found", ref)
		}
		return "", fmt.Errorf("error reading ref %s: %w", ref, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// UpdateRef updates a reference with a new SHA-1 hash. The write goes to a
// temp file in the same directory and is renamed into place, so a reader
// never observes a half-written ref.
func (rm *RefManager) UpdateRef(ref RefPath, sha objects.ObjectHash) error {
	fullPath := rm.resolveReferencePath(ref)
	absPath := fullPath.ToAbsolutePath()

	if err := fileops.EnsureParentDir(absPath); err != nil {
		return fmt.Errorf("failed to create ref directory: %w", err)
	}

	content := sha.String() + "\n"
	if err := fileops.AtomicWrite(absPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write ref %s: %w", ref, err)
	}

	return nil
}

// ResolveToSHA resolves a reference to its final SHA-1 hash, following symbolic refs
func (rm *RefManager) ResolveToSHA(ref RefPath) (string, error) {
	currentRef := ref

	for depth := 0; depth < MaxRefDepth; depth++ {
		content, err := rm.ReadRef(currentRef)
		if err != nil {
			return "", fmt.Errorf("error reading ref %s: %w", currentRef, err)
		}

		// Check if it's a symbolic reference
		if strings.HasPrefix(content, SymbolicRefPrefix) {
			target := strings.TrimPrefix(content, SymbolicRefPrefix)
			currentRef = RefPath(target)
			continue
		}

		// Check if it's a valid SHA-1
		if isSHA1(content) {
			return content, nil
		}

		return "", fmt.Errorf("invalid ref content: %s", content)
	}

	return "", fmt.Errorf("reference depth exceeded for %s", ref)
}

// DeleteRef deletes a reference
func (rm *RefManager) DeleteRef(ref RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref)

	if err := os.Remove(fullPath.String()); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Exists checks if a reference exists
func (rm *RefManager) Exists(ref RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref)
	_, err := os.Stat(fullPath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetHeadPath returns the full path to the HEAD file
func (rm *RefManager) GetHeadPath() scpath.SourcePath {
	return rm.headPath
}

// GetRefsPath returns the full path to the refs directory
func (rm *RefManager) GetRefsPath() scpath.SourcePath {
	return rm.refsPath
}

// resolveReferencePath resolves a RefPath to its full filesystem path
func (rm *RefManager) resolveReferencePath(ref RefPath) scpath.SourcePath {
	refStr := strings.TrimSpace(ref.String())

	// Handle HEAD reference
	if refStr == scpath.HeadFile {
		return rm.headPath
	}

	// If ref starts with "refs/", don't duplicate the refs root
	if strings.HasPrefix(refStr, scpath.RefsDir+"/") {
		// Remove the "refs/" prefix and join with refsPath
		relPath := strings.TrimPrefix(refStr, scpath.RefsDir+"/")
		return rm.refsPath.Join(relPath)
	}

	// Otherwise, join directly with refsPath
	return rm.refsPath.Join(refStr)
}

// isSHA1 checks if a string is a valid SHA-1 hash
func isSHA1(str string) bool {
	sha1Regex := regexp.MustCompile(`^[0-9a-f]{40}$`)
	return sha1Regex.MatchString(strings.ToLower(str))
}
