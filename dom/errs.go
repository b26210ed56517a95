package dom

import "errors"

var (
	// ErrNotFound reports an id absent from the document index, or a
	// named fragment absent from a leaf.
	ErrNotFound = errors.New("node not found")

	// ErrInvalidOp reports a structurally disallowed action, such as
	// reading content on a container or moving into a leaf.
	ErrInvalidOp = errors.New("invalid operation")
)
