package scanner

import "fmt"

// Kind classifies fatal scan failures. Anything else the scanner can observe
// (missing optional files, empty history) is recorded as a fact instead.
type Kind string

const (
	KindPathNotFound      Kind = "path_not_found"
	KindPermissionDenied  Kind = "permission_denied"
	KindNotAGitRepository Kind = "not_a_git_repository"
	KindCancelled         Kind = "cancelled"
)

type ScanError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scan %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("scan %s: %s", e.Path, e.Kind)
}

func (e *ScanError) Unwrap() error { return e.Err }
