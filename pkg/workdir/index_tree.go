package workdir

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pit/pit/pkg/index"
	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/objects/tree"
	"github.com/go-pit/pit/pkg/repository/scpath"
	"github.com/go-pit/pit/pkg/repository/sourcerepo"
)

// buildIndexTree writes a tree object for the current contents of idx and
// returns its oid, the same way a commit would, without storing a commit.
// Duplicated in miniature from commitmanager.TreeBuilder rather than
// imported: pkg/commitmanager imports pkg/refs/branch, which imports this
// package, so importing it here would be a cycle.
func buildIndexTree(ctx context.Context, repo *sourcerepo.SourceRepository, idx *index.Index) (objects.ObjectHash, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if idx.Count() == 0 {
		return repo.WriteObject(tree.NewTree([]*tree.TreeEntry{}))
	}

	root := newIndexTreeNode()
	for _, entry := range idx.Entries {
		root.addEntry(entry.Path.String(), entry.BlobHash, objects.FileMode(entry.Mode))
	}
	return root.write(ctx, repo)
}

type indexTreeNode struct {
	files   map[string]objects.ObjectHash
	modes   map[string]objects.FileMode
	subdirs map[string]*indexTreeNode
}

func newIndexTreeNode() *indexTreeNode {
	return &indexTreeNode{
		files:   make(map[string]objects.ObjectHash),
		modes:   make(map[string]objects.FileMode),
		subdirs: make(map[string]*indexTreeNode),
	}
}

func (n *indexTreeNode) addEntry(path string, sha objects.ObjectHash, mode objects.FileMode) {
	parts := strings.SplitN(filepath.ToSlash(path), "/", 2)
	if len(parts) == 1 {
		n.files[parts[0]] = sha
		n.modes[parts[0]] = mode
		return
	}

	sub, ok := n.subdirs[parts[0]]
	if !ok {
		sub = newIndexTreeNode()
		n.subdirs[parts[0]] = sub
	}
	sub.addEntry(parts[1], sha, mode)
}

func (n *indexTreeNode) write(ctx context.Context, repo *sourcerepo.SourceRepository) (objects.ObjectHash, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	entries := make([]*tree.TreeEntry, 0, len(n.files)+len(n.subdirs))
	for name, sha := range n.files {
		e, err := tree.NewTreeEntry(n.modes[name], scpath.RelativePath(name), sha)
		if err != nil {
			return "", fmt.Errorf("create tree entry for %s: %w", name, err)
		}
		entries = append(entries, e)
	}
	for name, sub := range n.subdirs {
		subSHA, err := sub.write(ctx, repo)
		if err != nil {
			return "", fmt.Errorf("build subdirectory %s: %w", name, err)
		}
		e, err := tree.NewTreeEntry(objects.FileModeDirectory, scpath.RelativePath(name), subSHA)
		if err != nil {
			return "", fmt.Errorf("create tree entry for directory %s: %w", name, err)
		}
		entries = append(entries, e)
	}

	return repo.WriteObject(tree.NewTree(entries))
}
