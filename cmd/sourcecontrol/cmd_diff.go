package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/go-pit/pit/pkg/diffengine"
	"github.com/go-pit/pit/pkg/refs/branch"
	"github.com/go-pit/pit/pkg/repository/sourcerepo"
	"github.com/go-pit/pit/pkg/workdir"
)

func newDiffCmd() *cobra.Command {
	var staged bool

	cmd := &cobra.Command{
		Use:   "diff [path]",
		Short: "Show changes between commits, the index, and the working tree",
		Long: `Show what has changed.

Without --staged, compares the working tree against the index: files with
local edits or deletions not yet staged. With --staged, compares the index
against HEAD: the changes that a commit right now would record.

An optional path restricts the report to a single file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			if staged {
				return runStagedDiff(cmd.Context(), repo, path)
			}
			return runUnstagedDiff(repo, path)
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Show changes staged for the next commit")

	return cmd
}

// runStagedDiff reports the path-level diff between the index and HEAD.
func runStagedDiff(ctx context.Context, repo *sourcerepo.SourceRepository, path string) error {
	headSHA, err := branch.NewManager(repo).CurrentCommit()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}

	manager := workdir.NewManager(repo)
	changes, err := manager.StagedChanges(ctx, headSHA)
	if err != nil {
		return fmt.Errorf("diff staged changes: %w", err)
	}

	printChanges(fmt.Sprintf("Changes staged for commit (against %s)", headSHA.Short()), changes, path)
	return nil
}

// runUnstagedDiff reports the working tree vs index status for files that
// have local edits not yet staged. The comparison is path-level only: the
// working tree isn't a stored tree object, so there is no oid pair to hand
// to the tree differ, and content-level hunks are left to an external
// line-differ over the two file contents.
func runUnstagedDiff(repo *sourcerepo.SourceRepository, path string) error {
	manager := workdir.NewManager(repo)
	status, err := manager.IsClean()
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}

	fmt.Println(renderHeader(" Unstaged changes "))

	printed := false
	for _, p := range status.ModifiedFiles {
		if path != "" && string(p) != path {
			continue
		}
		fmt.Println(formatModified(string(p)))
		printed = true
	}
	for _, p := range status.DeletedFiles {
		if path != "" && string(p) != path {
			continue
		}
		fmt.Println(formatDeleted(string(p)))
		printed = true
	}

	if !printed {
		fmt.Println(colorGreen("  no unstaged changes"))
	}
	return nil
}

// printChanges renders a diffengine.Changes map in stable path order,
// optionally restricted to a single path.
func printChanges(title string, changes diffengine.Changes, path string) {
	fmt.Println(renderHeader(" " + title + " "))

	paths := make([]string, 0, len(changes))
	for p := range changes {
		if path != "" && p != path {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		fmt.Println(colorGreen("  no changes"))
		return
	}

	for _, p := range paths {
		switch changes[p].Kind {
		case diffengine.Added:
			fmt.Println(formatAdded(p))
		case diffengine.Deleted:
			fmt.Println(formatDeleted(p))
		case diffengine.Updated:
			fmt.Println(formatModified(p))
		}
	}
}
