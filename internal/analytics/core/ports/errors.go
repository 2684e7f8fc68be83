package ports

import (
	"errors"
	"fmt"
)

// ErrConnectivity marks failures to reach the backing store. The
// orchestration layer uses it to decide on synthetic fallback; the providers
// themselves never substitute defaults.
var ErrConnectivity = errors.New("store unreachable")

// QueryError wraps a failed operation with its underlying cause. An empty
// result set is never a QueryError.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func NewQueryError(op string, err error) *QueryError {
	return &QueryError{Op: op, Err: err}
}
