// Package host is the marshaling boundary between Starlark driver scripts
// and the native code generation pipeline. It converts host values into the
// native forms the pipeline expects, owns the opaque parse tree handle
// passed between stages, and routes configuration and diagnostics.
package host

import (
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/bindgen/internal/codec"
	"github.com/leapstack-labs/bindgen/internal/diag"
	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

// ModuleName is the name driver scripts see the boundary module under.
const ModuleName = "code_generator"

// stdinName is the displayed filename when parsing standard input.
const stdinName = "stdin"

// Module binds the boundary operations to one pipeline, one globals
// instance and one diagnostic reporter. It is single-goroutine, like the
// process model it marshals for.
type Module struct {
	pipe    pipeline.Pipeline
	rep     *diag.Reporter
	globals *pipeline.Globals

	fs     *codec.Codec
	locale *codec.Codec
	stdin  io.Reader
}

// Option configures a Module.
type Option func(*Module)

// WithStdin replaces the reader used when parse is given no filename.
func WithStdin(r io.Reader) Option {
	return func(m *Module) { m.stdin = r }
}

// WithCodecs replaces the filesystem and locale codecs.
func WithCodecs(fs, locale *codec.Codec) Option {
	return func(m *Module) {
		m.fs = fs
		m.locale = locale
	}
}

// New returns a boundary module for the given pipeline and reporter.
func New(pipe pipeline.Pipeline, rep *diag.Reporter, opts ...Option) *Module {
	m := &Module{
		pipe:    pipe,
		rep:     rep,
		globals: &pipeline.Globals{},
		fs:      codec.Filesystem(),
		locale:  codec.Locale(),
		stdin:   os.Stdin,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Globals returns the process-wide configuration held by the module.
func (m *Module) Globals() *pipeline.Globals { return m.globals }

// Struct returns the Starlark module exposing the boundary operations.
func (m *Module) Struct() *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: ModuleName,
		Members: starlark.StringDict{
			"set_globals":         starlark.NewBuiltin("set_globals", m.setGlobals),
			"parse":               starlark.NewBuiltin("parse", m.parse),
			"transform":           starlark.NewBuiltin("transform", m.transform),
			"generate_code":       starlark.NewBuiltin("generate_code", m.generateCode),
			"generate_extracts":   starlark.NewBuiltin("generate_extracts", m.generateExtracts),
			"generate_api":        starlark.NewBuiltin("generate_api", m.generateAPI),
			"generate_xml":        starlark.NewBuiltin("generate_xml", m.generateXML),
			"generate_type_hints": starlark.NewBuiltin("generate_type_hints", m.generateTypeHints),
		},
	}
}

// requireGlobals guards every stage behind the one-time initialization.
func (m *Module) requireGlobals() error {
	if !m.globals.Sealed() {
		return pipeline.ErrNotSealed
	}
	return nil
}

func (m *Module) setGlobals(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		version       uint
		versionStr    string
		includeDirs   = stringListArg{codec: m.locale}
		warnings      bool
		warningsFatal bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"version", &version,
		"version_str", &versionStr,
		"include_dirs", &includeDirs,
		"warnings", &warnings,
		"warnings_fatal", &warningsFatal,
	); err != nil {
		return nil, err
	}

	if m.globals.Sealed() {
		return nil, pipeline.ErrSealed
	}

	m.globals.Version = version
	m.globals.VersionStr = versionStr
	m.globals.IncludeDirs = includeDirs.list
	m.globals.Warnings = warnings
	m.globals.WarningsFatal = warningsFatal
	if err := m.globals.Seal(); err != nil {
		return nil, err
	}

	m.rep.SetPolicy(warnings, warningsFatal)

	return starlark.None, nil
}

func (m *Module) parse(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		filename  = pathArg{codec: m.fs}
		strict    bool
		versions  = stringListArg{codec: m.locale}
		backstops = stringListArg{codec: m.locale}
		xfeatures = stringListArg{codec: m.locale}
		allKwArgs bool
		protHack  bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"filename", &filename,
		"strict", &strict,
		"versions", &versions,
		"backstops", &backstops,
		"xfeatures", &xfeatures,
		"all_kw_args", &allKwArgs,
		"protected_hack", &protHack,
	); err != nil {
		return nil, err
	}
	if err := m.requireGlobals(); err != nil {
		return nil, err
	}

	src := m.stdin
	name := stdinName
	if filename.set {
		f, err := os.Open(filename.path)
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", filename.path, err)
		}
		defer f.Close()
		src = f
		name = filename.path
	}

	kw := pipeline.NoKwArgs
	if allKwArgs {
		kw = pipeline.AllKwArgs
	}

	tree := &pipeline.Tree{}
	err := m.pipe.Parse(m.globals, tree, src, name, pipeline.ParseOptions{
		Strict:        strict,
		Versions:      versions.list,
		Backstops:     backstops.list,
		XFeatures:     xfeatures.list,
		KwArgs:        kw,
		ProtectedHack: protHack,
	})
	if err != nil {
		// No handle reaches the host for a failed parse.
		return nil, err
	}

	return newTreeHandle(tree), nil
}

func (m *Module) transform(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		tree   treeArg
		strict bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"tree", &tree,
		"strict", &strict,
	); err != nil {
		return nil, err
	}
	if err := m.requireGlobals(); err != nil {
		return nil, err
	}

	if err := m.pipe.Transform(m.globals, tree.tree, strict); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (m *Module) generateCode(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		tree       treeArg
		outputDir  = pathArg{codec: m.fs}
		srcSuffix  = pathArg{codec: m.fs}
		exceptions bool
		tracing    bool
		releaseLck bool
		parts      int
		versions   = stringListArg{codec: m.locale}
		xfeatures  = stringListArg{codec: m.locale}
		docs       bool
		debugBuild bool
		moduleName string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"tree", &tree,
		"output_dir", &outputDir,
		"src_suffix", &srcSuffix,
		"exceptions", &exceptions,
		"tracing", &tracing,
		"release_lock", &releaseLck,
		"parts", &parts,
		"versions", &versions,
		"xfeatures", &xfeatures,
		"docs", &docs,
		"debug_build", &debugBuild,
		"module_name", &moduleName,
	); err != nil {
		return nil, err
	}
	if err := m.requireGlobals(); err != nil {
		return nil, err
	}

	err := m.pipe.GenerateCode(m.globals, tree.tree, pipeline.CodeOptions{
		OutputDir:    outputDir.path,
		SourceSuffix: srcSuffix.path,
		Exceptions:   exceptions,
		Tracing:      tracing,
		ReleaseLock:  releaseLck,
		Parts:        parts,
		Versions:     versions.list,
		XFeatures:    xfeatures.list,
		Docs:         docs,
		DebugBuild:   debugBuild,
		ModuleName:   moduleName,
	})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (m *Module) generateExtracts(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		tree     treeArg
		extracts = stringListArg{codec: m.locale}
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"tree", &tree,
		"extracts", &extracts,
	); err != nil {
		return nil, err
	}
	if err := m.requireGlobals(); err != nil {
		return nil, err
	}

	if err := m.pipe.GenerateExtracts(m.globals, tree.tree, extracts.list); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// outputStage factors the three emitters that take a tree and one output
// path.
func (m *Module) outputStage(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, paramName string, run func(t *pipeline.Tree, path string) error) (starlark.Value, error) {
	var (
		tree treeArg
		out  = pathArg{codec: m.fs}
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"tree", &tree,
		paramName, &out,
	); err != nil {
		return nil, err
	}
	if err := m.requireGlobals(); err != nil {
		return nil, err
	}

	if err := run(tree.tree, out.path); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (m *Module) generateAPI(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return m.outputStage(b, args, kwargs, "api_file", func(t *pipeline.Tree, path string) error {
		return m.pipe.GenerateAPI(m.globals, t, path)
	})
}

func (m *Module) generateXML(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return m.outputStage(b, args, kwargs, "xml_file", func(t *pipeline.Tree, path string) error {
		return m.pipe.GenerateXML(m.globals, t, path)
	})
}

func (m *Module) generateTypeHints(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return m.outputStage(b, args, kwargs, "pyi_file", func(t *pipeline.Tree, path string) error {
		return m.pipe.GenerateTypeHints(m.globals, t, path)
	})
}
