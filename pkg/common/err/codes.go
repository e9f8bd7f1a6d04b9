package err

// Error codes for the user-level error taxonomy exposed at command
// boundaries: branch/revision/checkout failures render as a single
// diagnostic line, while Missing/Corrupt/Io are integrity failures that
// surface verbatim.
const (
	// CodeInvalidBranchName indicates a branch name failed validation.
	CodeInvalidBranchName = "INVALID_BRANCH_NAME"

	// CodeBranchAlreadyExists indicates create_branch targeted an existing ref.
	CodeBranchAlreadyExists = "BRANCH_ALREADY_EXISTS"

	// CodeInvalidRevision indicates a revision expression has a syntax error
	// or resolved to a non-commit object.
	CodeInvalidRevision = "INVALID_REVISION"

	// CodeUnknownRevision indicates a revision walk stepped past the root,
	// or a ref/oid prefix could not be resolved at all.
	CodeUnknownRevision = "UNKNOWN_REVISION"

	// CodeAmbiguousRevision indicates an oid prefix matched more than one object.
	CodeAmbiguousRevision = "AMBIGUOUS_REVISION"

	// CodeCheckoutConflict indicates migration's pre-flight conflict check failed.
	CodeCheckoutConflict = "CHECKOUT_CONFLICT"

	// CodeMissingObject indicates an object file is absent from the store.
	CodeMissingObject = "MISSING_OBJECT"

	// CodeCorruptObject indicates an object file exists but fails to decompress
	// or parse.
	CodeCorruptObject = "CORRUPT_OBJECT"

	// CodeIO indicates an underlying filesystem failure unrelated to repository
	// integrity (permissions, disk full, and so on).
	CodeIO = "IO"
)
