package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/bindgen/internal/diag"
	"github.com/leapstack-labs/bindgen/internal/stringlist"
)

// DryRunName is the registry name of the built-in recording pipeline.
const DryRunName = "dryrun"

func init() {
	Register(DryRunName, func(rep *diag.Reporter) Pipeline {
		return NewDryRun(rep)
	})
}

// Call records one stage invocation made against a DryRun pipeline.
type Call struct {
	Stage string
	Args  []string
}

// dryRunState is the per-tree state a DryRun parse attaches to the tree.
type dryRunState struct {
	filename    string
	bytes       int
	lines       int
	transformed bool
}

// DryRun is a pipeline that performs no generation. It consumes parse
// input, validates stage ordering, records every call and logs it, so
// driver scripts can be exercised without the real generator.
type DryRun struct {
	rep   *diag.Reporter
	log   *slog.Logger
	calls []Call
}

// NewDryRun returns a recording pipeline reporting through rep and logging
// through the default slog logger.
func NewDryRun(rep *diag.Reporter) *DryRun {
	return &DryRun{rep: rep, log: slog.Default()}
}

// SetLogger replaces the pipeline's logger.
func (d *DryRun) SetLogger(log *slog.Logger) { d.log = log }

// Calls returns the recorded stage invocations in order.
func (d *DryRun) Calls() []Call { return d.calls }

func (d *DryRun) record(stage string, args ...string) {
	d.calls = append(d.calls, Call{Stage: stage, Args: args})
}

// state fetches the dry-run parse state from a tree, failing for trees this
// pipeline never parsed.
func (d *DryRun) state(t *Tree) (*dryRunState, error) {
	st, ok := t.State().(*dryRunState)
	if !ok || st == nil {
		return nil, errors.New("tree has not been parsed")
	}
	return st, nil
}

// Parse consumes src entirely, counting bytes and lines, and attaches the
// result to the tree.
func (d *DryRun) Parse(g *Globals, t *Tree, src io.Reader, filename string, opts ParseOptions) error {
	st := &dryRunState{filename: filename}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		st.bytes += len(scanner.Bytes()) + 1
		st.lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if st.lines == 0 {
		d.rep.Warnf(diag.ParserWarning, "%s: specification is empty\n", filename)
	}

	t.SetState(st)
	d.record("parse", filename, fmt.Sprintf("kwargs=%s", opts.KwArgs))
	d.log.Info("parsed specification",
		"file", filename,
		"lines", st.lines,
		"strict", opts.Strict,
		"versions", opts.Versions.Strings(),
		"generator_version", g.VersionStr)
	return nil
}

// Transform marks the tree transformed.
func (d *DryRun) Transform(g *Globals, t *Tree, strict bool) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}
	st.transformed = true

	d.record("transform", st.filename)
	d.log.Info("transformed specification", "file", st.filename, "strict", strict)
	return nil
}

// GenerateCode records the code emitter call without writing anything.
func (d *DryRun) GenerateCode(g *Globals, t *Tree, opts CodeOptions) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}

	d.record("generateCode", opts.OutputDir, opts.ModuleName)
	d.log.Info("would generate code",
		"file", st.filename,
		"output_dir", opts.OutputDir,
		"module", opts.ModuleName,
		"parts", opts.Parts,
		"docs", opts.Docs)
	return nil
}

// GenerateExtracts records the extract names in list order.
func (d *DryRun) GenerateExtracts(g *Globals, t *Tree, extracts *stringlist.List) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}

	d.record("generateExtracts", extracts.Strings()...)
	d.log.Info("would generate extracts", "file", st.filename, "extracts", extracts.Strings())
	return nil
}

// GenerateAPI records the API listing call.
func (d *DryRun) GenerateAPI(g *Globals, t *Tree, apiFile string) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}

	d.record("generateAPI", apiFile)
	d.log.Info("would generate API listing", "file", st.filename, "output", apiFile)
	return nil
}

// GenerateXML records the XML emitter call.
func (d *DryRun) GenerateXML(g *Globals, t *Tree, xmlFile string) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}

	d.record("generateXML", xmlFile)
	d.log.Info("would generate XML", "file", st.filename, "output", xmlFile)
	return nil
}

// GenerateTypeHints records the type hints emitter call.
func (d *DryRun) GenerateTypeHints(g *Globals, t *Tree, hintsFile string) error {
	st, err := d.state(t)
	if err != nil {
		return err
	}

	d.record("generateTypeHints", hintsFile)
	d.log.Info("would generate type hints", "file", st.filename, "output", hintsFile)
	return nil
}
