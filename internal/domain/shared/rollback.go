package shared

import "fmt"

// EngineError wraps a failure produced while the Re-evaluation Coordinator
// or Dependency Scheduler is inside a transaction, carrying an explicit bit
// for whether the enclosing transaction must roll back.
//
// Most failures require rollback (a write succeeded partially, a strategy
// is malformed). A small number do not: a cycle detected under
// CyclePolicyLogAndContinue is reported to the caller but the transaction's
// other arrangements still commit, since the engine degrades gracefully
// rather than discarding unrelated work.
type EngineError struct {
	Err      error
	Rollback bool
}

// NewEngineError wraps err, marking the enclosing transaction for rollback.
func NewEngineError(err error) *EngineError {
	return &EngineError{Err: err, Rollback: true}
}

// NewEngineWarning wraps err without requiring the enclosing transaction to
// roll back. Use for degrade-and-continue conditions such as a detected
// dependency cycle.
func NewEngineWarning(err error) *EngineError {
	return &EngineError{Err: err, Rollback: false}
}

func (e *EngineError) Error() string {
	if e == nil || e.Err == nil {
		return "engine error"
	}
	return e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MustRollback reports whether err (if it is or wraps an *EngineError)
// requires the enclosing transaction to roll back. A plain error (not an
// EngineError) is treated as requiring rollback, matching the teacher's
// convention that any error aborts the transaction unless explicitly
// downgraded to a warning.
func MustRollback(err error) bool {
	if err == nil {
		return false
	}
	var ee *EngineError
	if asEngineError(err, &ee) {
		return ee.Rollback
	}
	return true
}

func asEngineError(err error, target **EngineError) bool {
	for err != nil {
		if ee, ok := err.(*EngineError); ok {
			*target = ee
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// Wrapf wraps err with additional context while preserving EngineError
// rollback semantics if err is (or wraps) one.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf(format+": %w", append(args, err)...)
	var ee *EngineError
	if asEngineError(err, &ee) {
		return &EngineError{Err: wrapped, Rollback: ee.Rollback}
	}
	return wrapped
}
