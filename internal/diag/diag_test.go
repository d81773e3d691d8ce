package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestReporter returns a reporter writing to a buffer whose exit calls
// are recorded instead of terminating the test binary.
func newTestReporter() (*Reporter, *bytes.Buffer, *[]int) {
	var buf bytes.Buffer
	var exits []int
	r := New(WithOutput(&buf), WithExit(func(code int) {
		exits = append(exits, code)
	}))
	return r, &buf, &exits
}

func TestParserWarningSuppressedWhenDisabled(t *testing.T) {
	r, buf, exits := newTestReporter()
	r.SetPolicy(false, false)

	r.Warnf(ParserWarning, "something odd\n")

	assert.Empty(t, buf.String())
	assert.Empty(t, *exits)
}

func TestDeprecationWarningNeverSuppressed(t *testing.T) {
	r, buf, _ := newTestReporter()
	r.SetPolicy(false, false)

	r.Warnf(DeprecationWarning, "old keyword %q\n", "Doc")

	assert.Equal(t, "bindgen: Deprecation warning: old keyword \"Doc\"\n", buf.String())
}

func TestWarningPrefixOncePerLogicalMessage(t *testing.T) {
	r, buf, _ := newTestReporter()
	r.SetPolicy(true, false)

	r.Warnf(ParserWarning, "line %d: ", 12)
	r.Warnf(ParserWarning, "unexpected token")
	r.Warnf(ParserWarning, " %q\n", ";")

	assert.Equal(t, "bindgen: Parser warning: line 12: unexpected token \";\"\n", buf.String())
}

func TestWarningResetsAfterCompletedMessage(t *testing.T) {
	r, buf, _ := newTestReporter()
	r.SetPolicy(true, false)

	r.Warnf(ParserWarning, "first\n")
	r.Warnf(ParserWarning, "second\n")

	want := "bindgen: Parser warning: first\n" +
		"bindgen: Parser warning: second\n"
	assert.Equal(t, want, buf.String())
}

func TestFatalWarningsTerminate(t *testing.T) {
	r, buf, exits := newTestReporter()
	r.SetPolicy(true, true)

	r.Warnf(ParserWarning, "partial, no exit yet")
	assert.Empty(t, *exits)

	r.Warnf(ParserWarning, " done\n")
	require.Equal(t, []int{1}, *exits)
	assert.Equal(t, "bindgen: Parser warning: partial, no exit yet done\n", buf.String())
}

func TestFatalWarningsPolicyAppliesToDeprecations(t *testing.T) {
	r, _, exits := newTestReporter()
	r.SetPolicy(false, true)

	r.Warnf(DeprecationWarning, "gone in the next release\n")

	assert.Equal(t, []int{1}, *exits)
}

func TestFatalfWritesPrefixAndExits(t *testing.T) {
	r, buf, exits := newTestReporter()

	r.Fatalf("unable to open %q", "a.sip")

	assert.Equal(t, "bindgen: unable to open \"a.sip\"", buf.String())
	assert.Equal(t, []int{1}, *exits)
}

func TestFatalStartIdempotent(t *testing.T) {
	r, buf, exits := newTestReporter()

	r.FatalStart()
	r.FatalStart()
	r.Fatalf("boom")

	assert.Equal(t, "bindgen: boom", buf.String())
	assert.Equal(t, []int{1}, *exits)
}

func TestFatalSequenceAssembledInParts(t *testing.T) {
	r, buf, _ := newTestReporter()

	// The pipeline writes context first, then the terminating fragment.
	r.FatalStart()
	buf.WriteString("a.sip:3: ")
	r.Fatalf("syntax error")

	assert.Equal(t, "bindgen: a.sip:3: syntax error", buf.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Parser warning", ParserWarning.String())
	assert.Equal(t, "Deprecation warning", DeprecationWarning.String())
}
