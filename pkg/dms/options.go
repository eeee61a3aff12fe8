package dms

// Filter narrows a list operation. Name and Values are forwarded to the
// service as-is; a filter whose Values is empty is still forwarded.
type Filter struct {
	Name   string   `json:"Name"`
	Values []string `json:"Values"`
}

// ListOptions are the common inputs of every list operation.
type ListOptions struct {
	// Filters, when non-empty, is sent as the Filters parameter. An empty
	// or nil slice is omitted from the outgoing call entirely.
	Filters []Filter

	// MaxResults is the requested page size, sent as MaxRecords. Zero
	// means the default of 100. Values beyond the service's cap are
	// forwarded untouched; the service rejects them itself.
	MaxResults int

	// Marker is the opaque continuation token from a previous page,
	// forwarded verbatim. Empty means first page.
	Marker string
}
