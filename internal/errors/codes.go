package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"

	// CodeShapeMismatch marks input whose keys or value types do not match
	// the structure being decoded.
	CodeShapeMismatch Code = "SHAPE_MISMATCH"

	// CodeIOFailure marks filesystem read or write failures.
	CodeIOFailure Code = "IO_FAILURE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitStatus maps a code to a process exit status for the CLI
func (c Code) ExitStatus() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeShapeMismatch:
		return 2
	case CodeNotFound:
		return 3
	case CodeIOFailure:
		return 4
	default:
		return 1
	}
}
