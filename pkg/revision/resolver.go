// Package revision resolves revision expressions of the form
// name[^|~N]* to a commit oid, by walking the first-parent chain
// from a named starting point.
package revision

import (
	"fmt"
	"strconv"

	cerr "github.com/go-pit/pit/pkg/common/err"
	"github.com/go-pit/pit/pkg/objects"
	"github.com/go-pit/pit/pkg/repository/sourcerepo"
)

// BranchResolver is the branch-lookup surface Resolver needs: does a name
// exist as a branch, what commit does it point at, and what does HEAD point
// at. *branch.BranchRefManager satisfies this; declared here (rather than
// importing the branch package directly) so branch code can depend on
// revision without creating an import cycle.
type BranchResolver interface {
	Exists(name string) (bool, error)
	Resolve(name string) (objects.ObjectHash, error)
	GetHeadSHA() (objects.ObjectHash, error)
}

// Resolver resolves revision expressions against a repository.
type Resolver struct {
	repo   *sourcerepo.SourceRepository
	branch BranchResolver
}

// NewResolver creates a revision resolver backed by the given repository
// and branch reference manager.
func NewResolver(repo *sourcerepo.SourceRepository, branchRefSvc BranchResolver) *Resolver {
	return &Resolver{repo: repo, branch: branchRefSvc}
}

// Resolve parses expr into a base ref and a sequence of ^/~N suffixes,
// resolves the base, and walks the first-parent chain accordingly.
func (r *Resolver) Resolve(expr string) (objects.ObjectHash, error) {
	base, steps, err := parse(expr)
	if err != nil {
		return "", err
	}

	sha, err := r.resolveBase(base)
	if err != nil {
		return "", err
	}

	for _, n := range steps {
		sha, err = r.walkParents(sha, n)
		if err != nil {
			return "", err
		}
	}

	return sha, nil
}

// resolveBase resolves the ref portion of an expression: HEAD/@, a branch
// name, or an oid prefix.
func (r *Resolver) resolveBase(ref string) (objects.ObjectHash, error) {
	if ref == "" {
		return "", cerr.New("revision", cerr.CodeInvalidRevision, "resolve", "empty revision expression", nil)
	}

	if ref == "HEAD" || ref == "@" {
		sha, err := r.branch.GetHeadSHA()
		if err != nil {
			return "", cerr.New("revision", cerr.CodeUnknownRevision, "resolve", ref, err)
		}
		return sha, nil
	}

	exists, err := r.branch.Exists(ref)
	if err != nil {
		return "", cerr.New("revision", cerr.CodeUnknownRevision, "resolve", ref, err)
	}
	if exists {
		sha, err := r.branch.Resolve(ref)
		if err != nil {
			return "", cerr.New("revision", cerr.CodeUnknownRevision, "resolve", ref, err)
		}
		return sha, nil
	}

	sha, err := r.repo.ObjectStore().PrefixMatch(ref)
	if err != nil {
		return "", err
	}

	if _, err := r.repo.ReadCommitObject(sha); err != nil {
		return "", cerr.New("revision", cerr.CodeInvalidRevision, "resolve",
			fmt.Sprintf("%s is not a commit", ref), err)
	}

	return sha, nil
}

// walkParents walks n steps along the first-parent chain starting at sha.
func (r *Resolver) walkParents(sha objects.ObjectHash, n int) (objects.ObjectHash, error) {
	current := sha
	for i := 0; i < n; i++ {
		c, err := r.repo.ReadCommitObject(current)
		if err != nil {
			return "", cerr.New("revision", cerr.CodeInvalidRevision, "walk_parents",
				fmt.Sprintf("%s is not a commit", current), err)
		}
		if c.ParentSHA == nil {
			return "", cerr.New("revision", cerr.CodeUnknownRevision, "walk_parents",
				fmt.Sprintf("%s has no parent", current), nil)
		}
		current = *c.ParentSHA
	}
	return current, nil
}

// parse splits expr into its base ref and an ordered list of parent-walk
// step counts, one per ^ or ~N suffix.
func parse(expr string) (string, []int, error) {
	i := 0
	for i < len(expr) && expr[i] != '^' && expr[i] != '~' {
		i++
	}
	base := expr[:i]

	var steps []int
	for i < len(expr) {
		switch expr[i] {
		case '^', '~':
			suffix := expr[i]
			j := i + 1
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			if j == i+1 {
				steps = append(steps, 1)
			} else {
				n, err := strconv.Atoi(expr[i+1 : j])
				if err != nil {
					return "", nil, cerr.New("revision", cerr.CodeInvalidRevision, "parse",
						fmt.Sprintf("invalid %c N suffix in %q", suffix, expr), err)
				}
				steps = append(steps, n)
			}
			i = j
		default:
			return "", nil, cerr.New("revision", cerr.CodeInvalidRevision, "parse",
				fmt.Sprintf("unexpected character %q in %q", expr[i], expr), nil)
		}
	}

	if base == "" && len(steps) > 0 {
		return "", nil, cerr.New("revision", cerr.CodeInvalidRevision, "parse",
			fmt.Sprintf("%q has no base ref", expr), nil)
	}

	return base, steps, nil
}
