package syntax

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"
)

// errorSymbol is the kind id tree-sitter assigns to ERROR nodes.
const errorSymbol = math.MaxUint16

// Point is a zero-based row/column position as reported by the parser.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is a read-only view of one node in a Tree. Copying a Node is cheap and
// never duplicates tree data; a Node is invalid once its Tree is closed.
type Node[G Grammar] struct {
	n *sitter.Node
}

// IsNull reports whether the handle refers to no node at all.
func (n Node[G]) IsNull() bool {
	return n.n == nil || n.n.IsNull()
}

// KindID returns the grammar-defined kind id of the node.
func (n Node[G]) KindID() uint16 {
	return uint16(n.n.Symbol())
}

// KindName returns the grammar-defined kind name of the node.
func (n Node[G]) KindName() string {
	return n.n.Type()
}

// IsNamed reports whether the node is a named grammar rule rather than an
// anonymous token such as punctuation or a keyword.
func (n Node[G]) IsNamed() bool {
	return n.n.IsNamed()
}

func (n Node[G]) StartByte() uint32 { return n.n.StartByte() }

func (n Node[G]) EndByte() uint32 { return n.n.EndByte() }

func (n Node[G]) StartPosition() Point {
	p := n.n.StartPoint()
	return Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

func (n Node[G]) EndPosition() Point {
	p := n.n.EndPoint()
	return Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

// HasError reports whether the node or any of its descendants is a syntax error.
func (n Node[G]) HasError() bool {
	return n.n.HasError()
}

// IsError reports whether the node itself was inserted by error recovery,
// either as an ERROR node or as a MISSING token.
func (n Node[G]) IsError() bool {
	return uint16(n.n.Symbol()) == errorSymbol || n.n.IsMissing()
}

// Parent returns the enclosing node, if there is one.
func (n Node[G]) Parent() (Node[G], bool) {
	p := n.n.Parent()
	if p == nil || p.IsNull() {
		return Node[G]{}, false
	}
	return Node[G]{n: p}, true
}

func (n Node[G]) ChildCount() int {
	return int(n.n.ChildCount())
}

// Child returns the i-th direct child. It panics when i is out of range.
func (n Node[G]) Child(i int) Node[G] {
	c := n.n.Child(i)
	if c == nil {
		panic("syntax: child index out of range")
	}
	return Node[G]{n: c}
}

// ChildByField returns the child stored under the given grammar field name.
func (n Node[G]) ChildByField(name string) (Node[G], bool) {
	c := n.n.ChildByFieldName(name)
	if c == nil || c.IsNull() {
		return Node[G]{}, false
	}
	return Node[G]{n: c}, true
}

// Same reports whether both handles refer to the same node of the same tree.
func (n Node[G]) Same(other Node[G]) bool {
	if n.IsNull() || other.IsNull() {
		return n.IsNull() == other.IsNull()
	}
	return n.n.Equal(other.n)
}

// Text returns the node's bytes within source, or nil when the node's range
// does not fit inside source.
func (n Node[G]) Text(source []byte) []byte {
	start, end := n.n.StartByte(), n.n.EndByte()
	if start > end || int(end) > len(source) {
		return nil
	}
	return source[start:end]
}

// Record is the serializable form of a node. Lines and columns are 1-based.
type Record struct {
	Kind        uint16 `json:"kind" yaml:"kind" toml:"kind" cbor:"kind" msgpack:"kind"`
	Name        string `json:"name" yaml:"name" toml:"name" cbor:"name" msgpack:"name"`
	StartLine   uint32 `json:"start_line" yaml:"start_line" toml:"start_line" cbor:"start_line" msgpack:"start_line"`
	StartColumn uint32 `json:"start_column" yaml:"start_column" toml:"start_column" cbor:"start_column" msgpack:"start_column"`
	EndLine     uint32 `json:"end_line" yaml:"end_line" toml:"end_line" cbor:"end_line" msgpack:"end_line"`
	EndColumn   uint32 `json:"end_column" yaml:"end_column" toml:"end_column" cbor:"end_column" msgpack:"end_column"`
}

// Record converts the node into its 1-based serializable form.
func (n Node[G]) Record() Record {
	start, end := n.StartPosition(), n.EndPosition()
	return Record{
		Kind:        n.KindID(),
		Name:        n.KindName(),
		StartLine:   start.Row + 1,
		StartColumn: start.Column + 1,
		EndLine:     end.Row + 1,
		EndColumn:   end.Column + 1,
	}
}
