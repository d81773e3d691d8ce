package pipeline

import (
	"errors"

	"github.com/leapstack-labs/bindgen/internal/stringlist"
)

// ErrSealed is returned when globals are set a second time.
var ErrSealed = errors.New("globals already set")

// ErrNotSealed is returned when a stage runs before the globals were set.
var ErrNotSealed = errors.New("set_globals has not been called")

// Globals is the process-wide generator configuration, set exactly once
// before the first stage runs and read-only afterwards. It is threaded
// explicitly into every stage call rather than held as package state; the
// sealed flag makes the single-writer-once contract checkable.
type Globals struct {
	// Version is the encoded generator version, e.g. 0x060000.
	Version uint

	// VersionStr is the human-readable version label.
	VersionStr string

	// IncludeDirs is the ordered search list for %Include directives.
	IncludeDirs *stringlist.List

	// Warnings enables suppressible warnings.
	Warnings bool

	// WarningsFatal escalates any completed warning to process termination.
	WarningsFatal bool

	sealed bool
}

// Seal marks the globals initialized. A second Seal fails with ErrSealed.
func (g *Globals) Seal() error {
	if g.sealed {
		return ErrSealed
	}
	g.sealed = true
	return nil
}

// Sealed reports whether the globals have been initialized.
func (g *Globals) Sealed() bool { return g.sealed }
