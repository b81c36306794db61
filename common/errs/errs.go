package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an input fails validation.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a requested option or capability is not supported.
	Unsupported = ErrorKind("Unsupported")

	// RemoteError is returned when a remote collaborator fails (transport error,
	// non-2xx status, malformed payload). Retryable by re-invoking the caller.
	RemoteError = ErrorKind("Remote Error")

	// OverflowUint64 is returned when a base-unit amount does not fit in uint64.
	OverflowUint64 = ErrorKind("overflow uint64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
