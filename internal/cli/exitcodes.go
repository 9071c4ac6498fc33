package cli

import (
	"errors"

	"github.com/yaklabco/mdreview/pkg/comment"
	"github.com/yaklabco/mdreview/pkg/fsutil"
	"github.com/yaklabco/mdreview/pkg/review"
)

// Exit codes for mdreview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates a command-level failure (bad span, unknown id).
	ExitError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeForError maps an error returned by command execution to an exit
// code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, review.ErrExternallyModified):
		return ExitIOError
	case errors.Is(err, comment.ErrNotFound),
		errors.Is(err, comment.ErrEmptySpan),
		errors.Is(err, comment.ErrInvalidSpan),
		errors.Is(err, comment.ErrInvalidType),
		errors.Is(err, comment.ErrOverlappingAnchor):
		return ExitError
	default:
		return ExitError
	}
}
