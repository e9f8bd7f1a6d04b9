// Package diffengine implements the recursive tree-to-tree diff that both
// the diff command and checkout migration consume: given two tree oids it
// walks both trees in lockstep and classifies every path as added, deleted,
// or updated, including the file<->directory type-changed case.
package diffengine

import (
	"fmt"

	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/objects/tree"
	"github.com/go-pit/pit/pkg/repository/scpath"
)

// ChangeKind classifies how a path differs between the before and after tree.
type ChangeKind int

const (
	Added ChangeKind = iota
	Deleted
	Updated
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Entry is the (mode, oid) pair a tree diff carries for one side of a change.
type Entry struct {
	Mode objects.FileMode
	SHA  objects.ObjectHash
}

// Change describes one path's transition between the before and after tree.
// Before is nil for Added; After is nil for Deleted; both are set for Updated.
type Change struct {
	Kind   ChangeKind
	Before *Entry
	After  *Entry
}

// Changes is the flat path -> Change map the tree diff produces.
type Changes map[string]*Change

// TreeReader is the minimal repository surface the diff needs.
// *sourcerepo.SourceRepository satisfies this.
type TreeReader interface {
	ReadTreeObject(hash objects.ObjectHash) (*tree.Tree, error)
}

// Diff recursively diffs the tree at before against the tree at after and
// returns a flat path -> Change map. Either oid may be empty, meaning the
// empty tree (so a wholesale add or a wholesale delete).
func Diff(r TreeReader, before, after objects.ObjectHash) (Changes, error) {
	changes := make(Changes)
	if err := diffInto(r, before, after, "", changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func diffInto(r TreeReader, beforeOid, afterOid objects.ObjectHash, base scpath.RelativePath, out Changes) error {
	beforeEntries, err := loadEntries(r, beforeOid)
	if err != nil {
		return fmt.Errorf("load before tree %s: %w", beforeOid.Short(), err)
	}
	afterEntries, err := loadEntries(r, afterOid)
	if err != nil {
		return fmt.Errorf("load after tree %s: %w", afterOid.Short(), err)
	}

	names := make(map[string]struct{}, len(beforeEntries)+len(afterEntries))
	for name := range beforeEntries {
		names[name] = struct{}{}
	}
	for name := range afterEntries {
		names[name] = struct{}{}
	}

	for name := range names {
		fullPath := joinPath(base, name)
		b, hasBefore := beforeEntries[name]
		a, hasAfter := afterEntries[name]

		switch {
		case hasAfter && !hasBefore:
			if a.IsDirectory() {
				if err := diffInto(r, "", a.SHA(), fullPath, out); err != nil {
					return err
				}
				continue
			}
			out[fullPath.String()] = &Change{Kind: Added, After: entryOf(a)}

		case hasBefore && !hasAfter:
			if b.IsDirectory() {
				if err := diffInto(r, b.SHA(), "", fullPath, out); err != nil {
					return err
				}
				continue
			}
			out[fullPath.String()] = &Change{Kind: Deleted, Before: entryOf(b)}

		default:
			if err := diffBothSides(r, b, a, fullPath, out); err != nil {
				return err
			}
		}
	}

	return nil
}

// diffBothSides handles a name present in both trees: unchanged, updated, a
// same-type recursion, or a file<->directory type change.
func diffBothSides(r TreeReader, b, a *tree.TreeEntry, fullPath scpath.RelativePath, out Changes) error {
	bothDirs := b.IsDirectory() && a.IsDirectory()
	bothFiles := !b.IsDirectory() && !a.IsDirectory()

	switch {
	case bothDirs:
		if b.SHA() == a.SHA() {
			return nil
		}
		return diffInto(r, b.SHA(), a.SHA(), fullPath, out)

	case bothFiles:
		if b.SHA() == a.SHA() && b.Mode() == a.Mode() {
			return nil
		}
		out[fullPath.String()] = &Change{Kind: Updated, Before: entryOf(b), After: entryOf(a)}
		return nil

	case b.IsDirectory():
		// before is a directory, after is a file: file side is the add.
		out[fullPath.String()] = &Change{Kind: Added, After: entryOf(a)}
		return diffInto(r, b.SHA(), "", fullPath, out)

	default:
		// before is a file, after is a directory: file side is the delete.
		out[fullPath.String()] = &Change{Kind: Deleted, Before: entryOf(b)}
		return diffInto(r, "", a.SHA(), fullPath, out)
	}
}

func joinPath(base scpath.RelativePath, name string) scpath.RelativePath {
	if base == "" {
		return scpath.RelativePath(name)
	}
	return base.Join(name)
}

func entryOf(e *tree.TreeEntry) *Entry {
	return &Entry{Mode: e.Mode(), SHA: e.SHA()}
}

func loadEntries(r TreeReader, oid objects.ObjectHash) (map[string]*tree.TreeEntry, error) {
	if oid == "" {
		return nil, nil
	}
	t, err := r.ReadTreeObject(oid)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*tree.TreeEntry, len(t.Entries()))
	for _, e := range t.Entries() {
		out[e.Name()] = e
	}
	return out, nil
}
