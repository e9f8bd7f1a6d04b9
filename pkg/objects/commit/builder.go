package commit

import (
	"fmt"

	"github.com/go-pit/pit/pkg/objects"
)

// CommitBuilder provides a fluent interface for building a Commit. This core
// only ever writes a single parent line, so ParentHashes takes zero or one
// oid; passing more than one is a builder error.
type CommitBuilder struct {
	commit *Commit
	errs   []error
}

// NewCommitBuilder creates a new CommitBuilder
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		commit: &Commit{},
	}
}

// TreeHash sets the tree SHA for the commit
func (b *CommitBuilder) TreeHash(treeSHA objects.ObjectHash) *CommitBuilder {
	if err := treeSHA.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid tree SHA: %w", err))
	} else {
		b.commit.TreeSHA = treeSHA
	}
	return b
}

// ParentHashes sets the commit's parent. Zero hashes means an initial
// commit; exactly one hash sets the first-parent line. More than one is
// rejected, since this core is first-parent only.
func (b *CommitBuilder) ParentHashes(parentSHAs ...objects.ObjectHash) *CommitBuilder {
	switch len(parentSHAs) {
	case 0:
		b.commit.ParentSHA = nil
	case 1:
		if err := parentSHAs[0].Validate(); err != nil {
			b.errs = append(b.errs, fmt.Errorf("invalid parent SHA: %w", err))
			return b
		}
		parent := parentSHAs[0]
		b.commit.ParentSHA = &parent
	default:
		b.errs = append(b.errs, fmt.Errorf("only a single parent is supported, got %d", len(parentSHAs)))
	}
	return b
}

// Author sets the author of the commit
func (b *CommitBuilder) Author(author *CommitPerson) *CommitBuilder {
	if author == nil {
		b.errs = append(b.errs, fmt.Errorf("author cannot be nil"))
	} else {
		b.commit.Author = author
	}
	return b
}

// Committer sets the committer of the commit
func (b *CommitBuilder) Committer(committer *CommitPerson) *CommitBuilder {
	if committer == nil {
		b.errs = append(b.errs, fmt.Errorf("committer cannot be nil"))
	} else {
		b.commit.Committer = committer
	}
	return b
}

// Message sets the commit message
func (b *CommitBuilder) Message(message string) *CommitBuilder {
	b.commit.Message = message
	return b
}

// Build creates the Commit, returning an error if validation fails
func (b *CommitBuilder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("commit builder errors: %v", b.errs)
	}

	if err := b.commit.Validate(); err != nil {
		return nil, err
	}

	return b.commit, nil
}
