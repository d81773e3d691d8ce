package host

// ArgTypeError reports a host value that does not match the shape a
// boundary operation expects. The message follows the host convention of
// naming the expected shape only.
type ArgTypeError struct {
	Expected string
}

func (e *ArgTypeError) Error() string {
	return e.Expected + " expected"
}
