package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Grammar binds a node space to one tree-sitter grammar. Implementations are
// zero-size marker types, so a Node parsed under one grammar cannot be handed
// to code expecting another.
type Grammar interface {
	Language() *sitter.Language
	Name() string
}

// Tree is a parsed source buffer. It owns the underlying tree-sitter tree and
// the source bytes; every Node derived from it is valid until Close.
type Tree[G Grammar] struct {
	tree   *sitter.Tree
	source []byte
}

// Parse parses source under grammar G. A fresh parser is used on every call,
// so Parse is safe to call from many goroutines at once.
func Parse[G Grammar](ctx context.Context, source []byte) (*Tree[G], error) {
	var g G
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.Language())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", g.Name(), err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", g.Name())
	}

	return &Tree[G]{tree: tree, source: source}, nil
}

// Root returns the root node of the tree.
func (t *Tree[G]) Root() Node[G] {
	return Node[G]{n: t.tree.RootNode()}
}

// Source returns the bytes the tree was parsed from.
func (t *Tree[G]) Source() []byte {
	return t.source
}

// Close releases the tree. Nodes obtained from it must not be used afterwards.
func (t *Tree[G]) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}
