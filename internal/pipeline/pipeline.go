// Package pipeline defines the native-typed contract between the scripting
// boundary and the code generator proper. The parser, semantic transformer
// and output emitters live behind the Pipeline interface; this package only
// fixes the argument forms they receive and the configuration they read.
package pipeline

import (
	"io"

	"github.com/leapstack-labs/bindgen/internal/stringlist"
)

// Tree is the opaque parse tree produced by Parse and borrowed by every
// later stage. The boundary allocates it zero-initialized and never inspects
// it; pipeline implementations attach their state through State/SetState.
type Tree struct {
	state any
}

// State returns the pipeline-private state attached to the tree.
func (t *Tree) State() any { return t.state }

// SetState attaches pipeline-private state to the tree.
func (t *Tree) SetState(state any) { t.state = state }

// KwArgs is the keyword-argument support policy applied while parsing.
type KwArgs int

const (
	// NoKwArgs disables keyword argument support unless annotated.
	NoKwArgs KwArgs = iota

	// AllKwArgs enables keyword argument support everywhere.
	AllKwArgs
)

func (k KwArgs) String() string {
	if k == AllKwArgs {
		return "all"
	}
	return "none"
}

// ParseOptions carries the per-invocation parse configuration.
type ParseOptions struct {
	Strict        bool
	Versions      *stringlist.List
	Backstops     *stringlist.List
	XFeatures     *stringlist.List
	KwArgs        KwArgs
	ProtectedHack bool
}

// CodeOptions carries the code emitter configuration.
type CodeOptions struct {
	OutputDir string

	// SourceSuffix overrides the generated source file suffix. Empty means
	// the emitter's default.
	SourceSuffix string

	Exceptions  bool
	Tracing     bool
	ReleaseLock bool

	// Parts splits the generated code into that many files, 0 for a single
	// file per module.
	Parts int

	Versions  *stringlist.List
	XFeatures *stringlist.List

	Docs       bool
	DebugBuild bool

	// ModuleName is the fully qualified name of the module being generated.
	ModuleName string
}

// Pipeline is the external code generator. Implementations report their own
// warnings and fatal errors through the diagnostic reporter they were
// constructed with; errors returned here are propagated to the host without
// being reported again.
type Pipeline interface {
	// Parse reads a specification from src (named filename for display
	// purposes) and fills the tree allocated by the caller.
	Parse(g *Globals, t *Tree, src io.Reader, filename string, opts ParseOptions) error

	// Transform applies semantic analysis to a parsed tree in place.
	Transform(g *Globals, t *Tree, strict bool) error

	// GenerateCode emits the binding source code.
	GenerateCode(g *Globals, t *Tree, opts CodeOptions) error

	// GenerateExtracts emits the named extract files in list order.
	GenerateExtracts(g *Globals, t *Tree, extracts *stringlist.List) error

	// GenerateAPI emits the QScintilla-style API listing.
	GenerateAPI(g *Globals, t *Tree, apiFile string) error

	// GenerateXML emits the XML description of the module.
	GenerateXML(g *Globals, t *Tree, xmlFile string) error

	// GenerateTypeHints emits the type hints stub file.
	GenerateTypeHints(g *Globals, t *Tree, hintsFile string) error
}
