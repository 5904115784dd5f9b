package render

import "fmt"

// RenderError indicates the base surface for a page could not be constructed,
// e.g. the overlay template is missing or unreadable. It is fatal to the
// current compose call; no buffer is returned alongside it.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render: %s", e.Op)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ComposeError wraps any unexpected failure during document composition with a
// human-readable cause.
type ComposeError struct {
	Cause string
	Err   error
}

func (e *ComposeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compose: %s: %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("compose: %s", e.Cause)
}

func (e *ComposeError) Unwrap() error { return e.Err }
