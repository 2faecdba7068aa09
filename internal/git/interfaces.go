package git

import "context"

// RevisionWalker defines the interface for walking revision history.
// This abstraction allows for easier testing and potential alternative implementations.
type RevisionWalker interface {
	// Walk runs the history tool for spec and decodes its output.
	Walk(ctx context.Context, spec *RevSpecifier, maxResults int) (*WalkResult, error)
}

// Compile-time interface conformance checks.
var (
	_ RevisionWalker = (*RevList)(nil)
	_ Executable     = GitExecutable{}
	_ Executable     = (*MockExecutable)(nil)
)
