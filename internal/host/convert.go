package host

import (
	"errors"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/bindgen/internal/codec"
	"github.com/leapstack-labs/bindgen/internal/pipeline"
	"github.com/leapstack-labs/bindgen/internal/stringlist"
)

// The three argument convertors. Each implements starlark.Unpacker so it can
// sit directly in a starlark.UnpackArgs parameter list; an Unpack error
// aborts the whole call before the pipeline is invoked.

// pathArg converts a filename argument with the filesystem codec. None is
// the explicit "no path" sentinel and leaves set false.
type pathArg struct {
	codec *codec.Codec

	path string
	set  bool
}

func (p *pathArg) Unpack(v starlark.Value) error {
	switch s := v.(type) {
	case starlark.NoneType:
		return nil
	case starlark.String:
		enc, err := p.codec.Encode(string(s))
		if err != nil {
			return err
		}
		p.path = enc
		p.set = true
		return nil
	default:
		return &ArgTypeError{Expected: "str or None"}
	}
}

// treeArg extracts the parse tree from an opaque handle.
type treeArg struct {
	tree *pipeline.Tree
}

func (a *treeArg) Unpack(v starlark.Value) error {
	h, ok := v.(*TreeHandle)
	if !ok {
		return &ArgTypeError{Expected: "parse tree"}
	}
	if h.tree == nil {
		return errors.New("parse tree handle is empty")
	}
	a.tree = h.tree
	return nil
}

// stringListArg converts a list of strings with the locale codec. None
// converts to the empty list. A single element failure, wrong type or
// encoding, aborts the whole conversion with no partial list kept.
type stringListArg struct {
	codec *codec.Codec

	list *stringlist.List
}

func (a *stringListArg) Unpack(v starlark.Value) error {
	switch seq := v.(type) {
	case starlark.NoneType:
		return nil
	case *starlark.List:
		list := &stringlist.List{}
		for i := 0; i < seq.Len(); i++ {
			s, ok := starlark.AsString(seq.Index(i))
			if !ok {
				return &ArgTypeError{Expected: "list of str"}
			}
			enc, err := a.codec.Encode(s)
			if err != nil {
				return err
			}
			list.Append(enc)
		}
		a.list = list
		return nil
	default:
		return &ArgTypeError{Expected: "list of str"}
	}
}
