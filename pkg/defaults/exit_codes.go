package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Clean shutdown
	ExitUserError     = 2 // Invalid arguments or configuration
	ExitNetworkError  = 3 // AWS client construction or transport failure
	ExitInternalError = 4 // Unexpected internal error
)
