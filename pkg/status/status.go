// Package status declares the error constants shared by the workflow
// packages.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between the workflow steps and
// the tool wrappers they drive.
package status

import "github.com/perfpredict/dataver/pkg/errors"

var (
	// Fatal setup-phase errors: the workflow cannot proceed meaningfully.

	// ErrToolMissing indicates that a required external binary is not on PATH
	ErrToolMissing = errors.New("required tool not installed")

	// ErrPreconditionMissing indicates that an expected marker directory or file is absent
	ErrPreconditionMissing = errors.New("precondition missing")

	// ErrInvalidInput indicates a bad menu index or an empty required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileNotFound indicates that the target file does not exist
	ErrFileNotFound = errors.New("file not found")

	// Recoverable sync-phase errors: local state is already durable, the
	// operation may be retried later.

	// ErrRemoteOperation indicates a failed push or verification against a remote
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrTagExists indicates a tag name collision
	ErrTagExists = errors.New("tag already exists")
)
