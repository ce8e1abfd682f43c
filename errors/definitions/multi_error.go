// Package definitions provides useful error types such as 'MultiError'.
package definitions

import (
	"strings"
)

// outputCapNotice is appended in place of the errors which don't fit within 'MultiError.OutputCap'.
const outputCapNotice = "error message output cap hit - not all errors are shown"

// MultiError aggregates multiple errors into a single error value.
//
// The zero value of MultiError is ready for use.
//
// NOTE: MultiError is not safe for concurrent use and needs to be wrapped in a lock to be shared safely between
// goroutines.
type MultiError struct {
	errs []error

	// Prefix will be printed before the errors in this MultiError.
	Prefix string

	// Separator will separate the errors in this MultiError. If omitted, defaults to "; ".
	Separator string

	// OutputCap limits the length of the message returned by 'Error', errors which would take the message beyond the cap
	// are replaced by a notice. Zero means no limit.
	OutputCap int
}

// Add adds a new error to this MultiError, nil errors and the MultiError itself are ignored.
func (m *MultiError) Add(err error) {
	if err == nil {
		return
	}

	if me, ok := err.(*MultiError); ok && me == m {
		return
	}

	m.errs = append(m.errs, err)
}

func (m *MultiError) Error() string {
	if len(m.errs) == 0 {
		return ""
	}

	sep := m.Separator
	if sep == "" {
		sep = "; "
	}

	var errStr strings.Builder

	errStr.WriteString(m.Prefix)

	for i, err := range m.errs {
		msg := err.Error()
		if i > 0 {
			msg = sep + msg
		}

		if m.OutputCap > 0 && errStr.Len()+len(msg) > m.OutputCap {
			if i > 0 {
				errStr.WriteString(sep)
			}

			errStr.WriteString(outputCapNotice)

			break
		}

		errStr.WriteString(msg)
	}

	return errStr.String()
}

// Len returns the number of errors accumulated by this MultiError.
func (m *MultiError) Len() int {
	return len(m.errs)
}

// Errors returns the full list of errors accumulated by this MultiError, or nil if there are none.
//
// NOTE: Callers must not modify the returned slice.
func (m *MultiError) Errors() []error {
	return m.errs
}

// Unwrap returns the accumulated errors, allowing 'errors.Is' and 'errors.As' to match any of them.
func (m *MultiError) Unwrap() []error {
	return m.errs
}

// ErrOrNil returns this MultiError if it has at least one error, or nil otherwise.
// The intended use case is the following:
//
//	return foo, errs.ErrOrNil()
//
// instead of:
//
//	if len(errs.Errors()) > 0 {
//		return nil, errs
//	}
//
//	return foo, nil
func (m *MultiError) ErrOrNil() error {
	if len(m.errs) > 0 {
		return m
	}

	return nil
}
