package importer

import "fmt"

// DecodeError is the fatal error class for files that cannot be turned
// into a table at all: empty input, an unparseable payload, or a parse
// that yields zero data rows. It aborts the whole operation before any
// row is examined and surfaces as HTTP 400.
//
// Per-row problems are never DecodeErrors; they are collected into the
// row report instead.
type DecodeError struct {
	FileName string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.FileName, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.FileName, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
