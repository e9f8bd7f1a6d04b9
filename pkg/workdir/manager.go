package workdir

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-pit/pit/pkg/diffengine"
	"github.com/go-pit/pit/pkg/index"
	"github.com/go-pit/pit/pkg/migration"
	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/repository/scpath"
	"github.com/go-pit/pit/pkg/repository/sourcerepo"
	"github.com/go-pit/pit/pkg/workdir/internal"
)

// Manager handles updating the working directory when switching between branches or commits.
// It orchestrates file operations, validation, transactions, and index updates.
type Manager struct {
	repo         *sourcerepo.SourceRepository
	fileOps      *internal.FileOps
	treeAnalyzer *internal.Analyzer
	validator    *internal.Validator
	transaction  *internal.Manager
	indexer      *internal.IndexUpdater
	indexPath    scpath.AbsolutePath
	workDir      string
}

// NewManager creates a new working directory manager
func NewManager(repo *sourcerepo.SourceRepository) *Manager {
	workDir := repo.WorkingDirectory().String()
	sourceDir := repo.SourceDirectory()
	indexPath := sourceDir.IndexPath().ToAbsolutePath()

	fileService := internal.NewFileOps(repo)
	treeAnalyzer := internal.NewAnalyzer(repo)
	workDirValidator := internal.NewValidator(repo.WorkingDirectory())
	txnManager := internal.NewManager(fileService, sourceDir)
	indexUpdater := internal.NewUpdater(workDir, indexPath)

	return &Manager{
		repo:         repo,
		fileOps:      fileService,
		treeAnalyzer: treeAnalyzer,
		validator:    workDirValidator,
		transaction:  txnManager,
		indexer:      indexUpdater,
		indexPath:    indexPath,
		workDir:      workDir,
	}
}

// UpdateToCommit updates the working directory to match a specific commit.
// It diffs the staged tree against the target commit's tree, rejects the
// update if any changed path has local modifications that would be lost
// (unless forced), then executes the resulting operations atomically and
// updates the index.
func (m *Manager) UpdateToCommit(ctx context.Context, commitSHA objects.ObjectHash, opts ...Option) (UpdateResult, error) {
	config := &updateConfig{}
	for _, opt := range opts {
		opt(config)
	}

	idx, err := index.Read(m.indexPath)
	if err != nil {
		wrapped := NewIndexError("read", m.indexPath.String(), err)
		return UpdateResult{Success: false, Err: wrapped}, wrapped
	}

	changes, _, err := m.diffAgainstCommit(ctx, idx, commitSHA)
	if err != nil {
		wrapped := fmt.Errorf("diff against target commit: %w", err)
		return UpdateResult{Success: false, Err: wrapped}, wrapped
	}

	if !config.force {
		if err := migration.DetectConflicts(m.repo.WorkingDirectory(), changes); err != nil {
			return UpdateResult{Success: false, Err: err}, err
		}
	}

	operations := operationsFromChanges(changes)
	if len(operations) == 0 {
		return UpdateResult{
			Success:      true,
			FilesChanged: 0,
			Operations:   []Operation{},
		}, nil
	}

	if config.dryRun {
		return m.performDryRun(operations), nil
	}

	// Apply runs migration's own deletions-then-additions-then-updates phase
	// (spec §4.7 phase 2), not the path-sorted operations slice above: a
	// directory-to-file type change emits an Added for the file and a
	// Deleted for everything that was under it at the same path prefix, and
	// a path-sorted apply would try to create the file before the old
	// directory is empty.
	lock, err := internal.AcquireLock(m.repo.SourceDirectory())
	if err != nil {
		wrapped := fmt.Errorf("acquire lock: %w", err)
		return UpdateResult{Success: false, Operations: operations, Err: wrapped}, wrapped
	}
	defer lock.Release()

	if err := migration.Apply(m.repo.WorkingDirectory(), m.repo, idx, changes); err != nil {
		return UpdateResult{
			Success:    false,
			Operations: operations,
			Err:        err,
		}, err
	}

	if err := idx.Write(m.indexPath); err != nil {
		wrapped := NewIndexError("write", m.indexPath.String(), err)
		return UpdateResult{
			Success:      true,
			FilesChanged: len(operations),
			Operations:   operations,
			Err:          nil, // files on disk already match; index persist failed
		}, wrapped
	}

	return UpdateResult{
		Success:      true,
		FilesChanged: len(operations),
		Operations:   operations,
	}, nil
}

// StagedChanges diffs the current index against the tree of commitSHA and
// returns the path-level changes, for reporting rather than migration.
func (m *Manager) StagedChanges(ctx context.Context, commitSHA objects.ObjectHash) (diffengine.Changes, error) {
	idx, err := index.Read(m.indexPath)
	if err != nil {
		return nil, NewIndexError("read", m.indexPath.String(), err)
	}

	indexTreeSHA, err := buildIndexTree(ctx, m.repo, idx)
	if err != nil {
		return nil, fmt.Errorf("build index tree: %w", err)
	}

	baseCommit, err := m.repo.ReadCommitObject(commitSHA)
	if err != nil {
		return nil, fmt.Errorf("read base commit: %w", err)
	}

	changes, err := diffengine.Diff(m.repo, baseCommit.TreeSHA, indexTreeSHA)
	if err != nil {
		return nil, fmt.Errorf("diff tree: %w", err)
	}
	return changes, nil
}

// IsClean checks if the working directory has uncommitted changes
func (m *Manager) IsClean() (Status, error) {
	idx, err := index.Read(m.indexPath)
	if err != nil {
		return Status{}, NewIndexError("read", m.indexPath.String(), err)
	}

	internalStatus, err := m.validator.ValidateCleanState(idx)
	if err != nil {
		return Status{}, err
	}
	return internalStatus, nil
}

// diffAgainstCommit builds a tree for the current index and diffs it
// against the target commit's tree, returning both the path-level changes
// (for conflict detection and operation building) and the target commit's
// flat file map (for the index updater).
func (m *Manager) diffAgainstCommit(ctx context.Context, idx *index.Index, commitSHA objects.ObjectHash) (diffengine.Changes, map[scpath.RelativePath]internal.FileInfo, error) {
	indexTreeSHA, err := buildIndexTree(ctx, m.repo, idx)
	if err != nil {
		return nil, nil, fmt.Errorf("build index tree: %w", err)
	}

	targetCommit, err := m.repo.ReadCommitObject(commitSHA)
	if err != nil {
		return nil, nil, fmt.Errorf("read target commit: %w", err)
	}

	changes, err := diffengine.Diff(m.repo, indexTreeSHA, targetCommit.TreeSHA)
	if err != nil {
		return nil, nil, fmt.Errorf("diff tree: %w", err)
	}

	targetFiles, err := m.treeAnalyzer.GetCommitFiles(ctx, commitSHA)
	if err != nil {
		return nil, nil, fmt.Errorf("get commit files: %w", err)
	}

	return changes, targetFiles, nil
}

// operationsFromChanges converts a tree diff into the working-directory
// operations used for reporting (dry run previews and UpdateResult.Operations),
// sorted by path so listings are deterministic. The real apply does not use
// this ordering: migration.Apply re-buckets changes into deletions, then
// additions, then updates, which is the order phase 2 requires.
func operationsFromChanges(changes diffengine.Changes) []internal.Operation {
	ops := make([]internal.Operation, 0, len(changes))
	for path, c := range changes {
		rel, err := scpath.NewRelativePath(path)
		if err != nil {
			continue
		}

		switch c.Kind {
		case diffengine.Deleted:
			ops = append(ops, internal.Operation{Path: rel, Action: internal.ActionDelete})
		case diffengine.Added:
			ops = append(ops, internal.Operation{Path: rel, Action: internal.ActionCreate, SHA: c.After.SHA, Mode: c.After.Mode})
		case diffengine.Updated:
			ops = append(ops, internal.Operation{Path: rel, Action: internal.ActionModify, SHA: c.After.SHA, Mode: c.After.Mode})
		}
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].Path.String() < ops[j].Path.String() })
	return ops
}

// performDryRun analyzes what would change without making actual modifications
func (m *Manager) performDryRun(ops []internal.Operation) UpdateResult {
	dryRunResult := m.transaction.DryRun(ops)

	return UpdateResult{
		Success:      dryRunResult.Valid,
		FilesChanged: 0,
		Operations:   ops,
		Err:          nil,
	}
}

// updateConfig holds configuration for update operations
type updateConfig struct {
	force      bool
	dryRun     bool
	onProgress func(completed, total int, currentFile string)
}

type Option func(*updateConfig)

// WithForce bypasses safety checks for uncommitted changes
func WithForce() Option {
	return func(c *updateConfig) {
		c.force = true
	}
}

// WithDryRun analyzes what would change without making modifications
func WithDryRun() Option {
	return func(c *updateConfig) {
		c.dryRun = true
	}
}

// WithProgress sets a progress callback
func WithProgress(fn func(completed, total int, currentFile string)) Option {
	return func(c *updateConfig) {
		c.onProgress = fn
	}
}
