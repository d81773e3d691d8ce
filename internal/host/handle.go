package host

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

// TreeHandle wraps a parse tree as an opaque Starlark value. The host holds
// the only reference and passes it back to later stages; it cannot inspect
// or mutate the tree through it.
type TreeHandle struct {
	tree *pipeline.Tree
}

var _ starlark.Value = (*TreeHandle)(nil)

func newTreeHandle(tree *pipeline.Tree) *TreeHandle {
	return &TreeHandle{tree: tree}
}

func (h *TreeHandle) String() string { return "<parse tree>" }

// Type returns the Starlark type name.
func (h *TreeHandle) Type() string { return "parse_tree" }

// Freeze is a no-op: the handle exposes nothing mutable to Starlark.
func (h *TreeHandle) Freeze() {}

// Truth reports a handle as truthy.
func (h *TreeHandle) Truth() starlark.Bool { return starlark.True }

// Hash marks handles unhashable, keeping them out of dict keys and sets.
func (h *TreeHandle) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", h.Type())
}
