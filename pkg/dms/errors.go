package dms

import "fmt"

// InvalidParameterError reports a missing required parameter or a
// semantically invalid value. It is always raised before any network call.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string { return e.Message }

// invalidParamf builds an InvalidParameterError.
func invalidParamf(format string, args ...any) error {
	return &InvalidParameterError{Message: fmt.Sprintf(format, args...)}
}

// ResourceNotFoundError reports that a lookup by identifier returned zero
// matching records.
type ResourceNotFoundError struct {
	Message string
}

func (e *ResourceNotFoundError) Error() string { return e.Message }

// notFoundf builds a ResourceNotFoundError.
func notFoundf(format string, args ...any) error {
	return &ResourceNotFoundError{Message: fmt.Sprintf(format, args...)}
}
