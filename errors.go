package fixturegen

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrCompression indicates the codec could not compress an entry's input.
	ErrCompression = errors.New("compression failure")

	// ErrIO indicates an artifact could not be created or written.
	ErrIO = errors.New("io failure")

	// ErrClosed indicates the generator has been closed.
	ErrClosed = errors.New("fixturegen: generator closed")

	// ErrNoStore indicates no artifact store or output directory was provided.
	ErrNoStore = errors.New("fixturegen: no store provided")

	// ErrNoCodec indicates the codec was explicitly unset.
	ErrNoCodec = errors.New("fixturegen: no codec provided")
)

// FixtureError reports a failure to produce one corpus entry's artifact.
// It matches both its Kind (ErrCompression or ErrIO) and its cause with
// errors.Is.
type FixtureError struct {
	Name string
	Kind error
	Err  error
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Name, e.Kind, e.Err)
}

func (e *FixtureError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func compressionError(name string, err error) *FixtureError {
	return &FixtureError{Name: name, Kind: ErrCompression, Err: err}
}

func ioError(name string, err error) *FixtureError {
	return &FixtureError{Name: name, Kind: ErrIO, Err: err}
}
