// Package migration implements the two-phase checkout engine: a read-only
// conflict-detection pass over a tree diff, followed by an ordered apply
// pass (deletions, then additions, then updates) that rewrites the working
// tree and the staging index to match the diff's "after" side.
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-pit/pit/pkg/diffengine"
	cerr "github.com/go-pit/pit/pkg/common/err"
	"github.com/go-pit/pit/pkg/index"
	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/objects/blob"
	"github.com/go-pit/pit/pkg/repository/scpath"
)

// Conflict names one path that an Apply would overwrite or destroy local
// changes for.
type Conflict struct {
	Path   string
	Reason string
}

// ConflictError is returned by DetectConflicts when applying changes would
// overwrite or lose local modifications. Nothing has been mutated when this
// error is returned.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("checkout would overwrite %d file(s) with local changes", len(e.Conflicts))
}

// Paths returns the conflicting paths in sorted order.
func (e *ConflictError) Paths() []string {
	paths := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		paths[i] = c.Path
	}
	sort.Strings(paths)
	return paths
}

func newConflictErr(conflicts []Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Path < conflicts[j].Path })
	return cerr.New("migration", cerr.CodeCheckoutConflict, "detect_conflicts", "",
		&ConflictError{Conflicts: conflicts})
}

// BlobReader is the minimal repository surface Apply needs to materialize
// file content. *sourcerepo.SourceRepository satisfies this.
type BlobReader interface {
	ReadBlobObject(hash objects.ObjectHash) (*blob.Blob, error)
}

// DetectConflicts implements migration's read-only pre-flight phase: for
// every change, classify it against the current working-tree file and
// report any path where applying the change would overwrite or destroy
// local data. Returns a *cerr.Error wrapping a *ConflictError (via Is/As)
// when conflicts exist, nil otherwise.
func DetectConflicts(workDir scpath.RepositoryPath, changes diffengine.Changes) error {
	var conflicts []Conflict

	for path, change := range changes {
		full, err := fullPath(workDir, path)
		if err != nil {
			return err
		}

		switch change.Kind {
		case diffengine.Added:
			if fileExists(full) {
				conflicts = append(conflicts, Conflict{Path: path, Reason: "untracked file would be overwritten"})
			}

		case diffengine.Deleted, diffengine.Updated:
			ok, err := contentMatches(full, change.Before)
			if err != nil {
				return fmt.Errorf("check %s: %w", path, err)
			}
			if !ok {
				reason := "local modifications would be overwritten"
				if change.Kind == diffengine.Deleted {
					reason = "local modifications would be lost"
				}
				conflicts = append(conflicts, Conflict{Path: path, Reason: reason})
			}
		}
	}

	return newConflictErr(conflicts)
}

// Apply executes migration's phase 2: deletions first, then additions, then
// updates, mutating the working tree and idx in place. Callers are
// responsible for persisting idx afterward. Apply does not call
// DetectConflicts itself — callers must have already done so and confirmed
// a clean pre-flight before calling Apply.
func Apply(workDir scpath.RepositoryPath, repo BlobReader, idx *index.Index, changes diffengine.Changes) error {
	deletions, additions, updates := bucket(changes)

	for _, path := range deletions {
		if err := removeFile(workDir, idx, path); err != nil {
			return fmt.Errorf("delete %s: %w", path, err)
		}
	}
	for _, path := range additions {
		if err := writeFile(workDir, repo, idx, path, changes[path].After); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}
	for _, path := range updates {
		if err := writeFile(workDir, repo, idx, path, changes[path].After); err != nil {
			return fmt.Errorf("update %s: %w", path, err)
		}
	}

	return nil
}

func bucket(changes diffengine.Changes) (deletions, additions, updates []string) {
	for path, c := range changes {
		switch c.Kind {
		case diffengine.Deleted:
			deletions = append(deletions, path)
		case diffengine.Added:
			additions = append(additions, path)
		case diffengine.Updated:
			updates = append(updates, path)
		}
	}
	sort.Strings(deletions)
	sort.Strings(additions)
	sort.Strings(updates)
	return
}

func removeFile(workDir scpath.RepositoryPath, idx *index.Index, path string) error {
	rel, err := scpath.NewRelativePath(path)
	if err != nil {
		return err
	}
	full := workDir.Join(rel.String())

	if err := os.Remove(full.String()); err != nil && !os.IsNotExist(err) {
		return err
	}
	cleanEmptyParents(workDir, full.Dir())
	idx.Remove(rel)
	return nil
}

func writeFile(workDir scpath.RepositoryPath, repo BlobReader, idx *index.Index, path string, entry *diffengine.Entry) error {
	rel, err := scpath.NewRelativePath(path)
	if err != nil {
		return err
	}
	full := workDir.Join(rel.String())

	b, err := repo.ReadBlobObject(entry.SHA)
	if err != nil {
		return fmt.Errorf("read blob %s: %w", entry.SHA.Short(), err)
	}
	content, err := b.Content()
	if err != nil {
		return fmt.Errorf("blob content: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(full.String()), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if err := atomicWrite(full.String(), content.Bytes(), entry.Mode.ToOSFileMode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	info, err := os.Stat(full.String())
	if err != nil {
		return fmt.Errorf("stat written file: %w", err)
	}

	indexEntry, err := index.NewEntryFromFileInfo(rel, info, entry.SHA)
	if err != nil {
		return fmt.Errorf("build index entry: %w", err)
	}
	// NewEntryFromFileInfo derives Mode from the file on disk; the tree's
	// mode (100644/100755/40000) is the one that must round-trip.
	indexEntry.Mode = index.FileMode(entry.Mode)
	idx.Add(indexEntry)
	return nil
}

// atomicWrite writes data to a file using the write-then-rename discipline
// spec's concurrency model requires for every working-tree mutation.
func atomicWrite(targetPath string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(targetPath)
	tmp, err := os.CreateTemp(dir, ".tmp-migration-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return os.Rename(tmp.Name(), targetPath)
}

func cleanEmptyParents(workDir scpath.RepositoryPath, dir scpath.AbsolutePath) {
	for dir.String() != workDir.String() && filepath.HasPrefix(dir.String(), workDir.String()) {
		entries, err := os.ReadDir(dir.String())
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir.String()); err != nil {
			return
		}
		dir = dir.Dir()
	}
}

func fullPath(workDir scpath.RepositoryPath, path string) (string, error) {
	rel, err := scpath.NewRelativePath(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return workDir.Join(rel.String()).String(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// contentMatches reports whether the file on disk at path has exactly the
// mode and content described by expected. A missing file never matches.
func contentMatches(path string, expected *diffengine.Entry) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat: %w", err)
	}

	if objects.FromOSFileMode(info.Mode()) != expected.Mode {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read: %w", err)
	}

	b := blob.NewBlob(data)
	hash, err := b.Hash()
	if err != nil {
		return false, fmt.Errorf("hash: %w", err)
	}

	return hash == expected.SHA, nil
}
