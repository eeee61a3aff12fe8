package dms

// Result is the uniform envelope returned by every manager method. Error is
// nil on success. Hard failures (gateway errors, invalid parameters) are
// returned as Go errors instead and converted to envelopes at the tool
// boundary.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *ErrorInfo     `json:"error"`
}

// ErrorInfo carries the error payload of a failed Result. Message is a
// pointer so a failure whose upstream message was absent stays null rather
// than becoming an empty string.
type ErrorInfo struct {
	Message *string `json:"message"`
}

// okResult wraps data in a successful envelope.
func okResult(data map[string]any) *Result {
	return &Result{Success: true, Data: data, Error: nil}
}

// failResult wraps data in a failed envelope. message may be nil.
func failResult(data map[string]any, message *string) *Result {
	return &Result{Success: false, Data: data, Error: &ErrorInfo{Message: message}}
}
