// Package diag reports warnings and fatal errors for the generator on a
// single plain-text stream. Messages may arrive in fragments; the reporter
// tracks whether the current logical line is still open so a multi-call
// sequence renders as one prefixed line.
//
// The reporter is deliberately unsynchronized: the boundary runs on exactly
// one goroutine (see the process model notes in DESIGN.md).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// toolPrefix identifies the generator on every diagnostic line.
const toolPrefix = "bindgen: "

// Kind classifies a warning message.
type Kind int

const (
	// ParserWarning is suppressed when warnings are disabled.
	ParserWarning Kind = iota

	// DeprecationWarning is always emitted, regardless of policy.
	DeprecationWarning
)

func (k Kind) String() string {
	switch k {
	case ParserWarning:
		return "Parser warning"
	case DeprecationWarning:
		return "Deprecation warning"
	}
	return "Warning"
}

// Reporter emits warning and fatal diagnostics. The zero value is not
// usable; construct with New.
type Reporter struct {
	out  io.Writer
	exit func(int)

	warnings      bool
	warningsFatal bool

	warnStart    bool
	fatalStarted bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithOutput directs diagnostics to w instead of standard error.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) { r.out = w }
}

// WithExit replaces the process-termination function. Tests use this to
// observe fatal diagnostics without exiting.
func WithExit(fn func(code int)) Option {
	return func(r *Reporter) { r.exit = fn }
}

// New returns a Reporter writing to standard error with warnings disabled
// until SetPolicy is called.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		out:       os.Stderr,
		exit:      os.Exit,
		warnStart: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPolicy configures warning suppression and the fatal-on-warning
// escalation.
func (r *Reporter) SetPolicy(warnings, warningsFatal bool) {
	r.warnings = warnings
	r.warningsFatal = warningsFatal
}

// Warnf writes all or part of a one line warning message. The first fragment
// of a logical message is prefixed with the tool name and the warning kind.
// A fragment containing a newline completes the message: with the
// fatal-on-warning policy enabled the process terminates, otherwise the next
// Warnf starts a fresh line.
func (r *Reporter) Warnf(kind Kind, format string, args ...any) {
	if !r.warnings && kind != DeprecationWarning {
		return
	}

	if r.warnStart {
		fmt.Fprintf(r.out, "%s%s: ", toolPrefix, kind)
		r.warnStart = false
	}

	msg := fmt.Sprintf(format, args...)
	io.WriteString(r.out, msg)

	if strings.Contains(msg, "\n") {
		if r.warningsFatal {
			r.exit(1)
		}
		r.warnStart = true
	}
}

// FatalStart makes sure the start of a fatal message is handled. It writes
// the tool prefix exactly once per fatal sequence, so the pipeline can
// assemble a multi-part fatal message before the terminating Fatalf.
func (r *Reporter) FatalStart() {
	if !r.fatalStarted {
		io.WriteString(r.out, toolPrefix)
		r.fatalStarted = true
	}
}

// Fatalf writes all or part of a one line fatal error message and terminates
// the process with a non-zero status. It does not return unless the exit
// function was replaced.
func (r *Reporter) Fatalf(format string, args ...any) {
	r.FatalStart()
	fmt.Fprintf(r.out, format, args...)
	r.exit(1)
}
