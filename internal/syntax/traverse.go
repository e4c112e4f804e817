package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

type frame struct {
	node  *sitter.Node
	depth int
}

// walk visits root and all of its descendants depth-first, pre-order, left
// to right. It uses an explicit stack so arbitrarily deep trees cannot exhaust
// the goroutine stack. visit returning false stops the walk. The root is at
// depth 0. A null root visits nothing.
func walk(root *sitter.Node, visit func(node *sitter.Node, depth int) bool) {
	if root == nil || root.IsNull() {
		return
	}
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	stack := []frame{{node: root}}
	var children []*sitter.Node

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(top.node, top.depth) {
			return
		}

		children = collectChildren(cursor, top.node, children[:0])
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], depth: top.depth + 1})
		}
	}
}

// collectChildren appends the direct children of node to dst using cursor.
func collectChildren(cursor *sitter.TreeCursor, node *sitter.Node, dst []*sitter.Node) []*sitter.Node {
	cursor.Reset(node)
	if !cursor.GoToFirstChild() {
		return dst
	}
	for {
		dst = append(dst, cursor.CurrentNode())
		if !cursor.GoToNextSibling() {
			return dst
		}
	}
}

// FirstOccurrence returns the first node, in VisitAll order and starting with
// n itself, whose kind id satisfies pred.
func (n Node[G]) FirstOccurrence(pred func(kindID uint16) bool) (Node[G], bool) {
	var found *sitter.Node
	walk(n.n, func(node *sitter.Node, _ int) bool {
		if pred(uint16(node.Symbol())) {
			found = node
			return false
		}
		return true
	})
	if found == nil {
		return Node[G]{}, false
	}
	return Node[G]{n: found}, true
}

// VisitAll calls action once for n and once for every descendant, parents
// before children and siblings left to right.
func (n Node[G]) VisitAll(action func(Node[G])) {
	walk(n.n, func(node *sitter.Node, _ int) bool {
		action(Node[G]{n: node})
		return true
	})
}

// Walk is VisitAll with early exit: the traversal stops as soon as action
// returns false.
func (n Node[G]) Walk(action func(Node[G]) bool) {
	walk(n.n, func(node *sitter.Node, _ int) bool {
		return action(Node[G]{n: node})
	})
}

// WalkDepth is Walk that also reports each node's depth below n.
func (n Node[G]) WalkDepth(action func(node Node[G], depth int) bool) {
	walk(n.n, func(node *sitter.Node, depth int) bool {
		return action(Node[G]{n: node}, depth)
	})
}

// FirstChild returns the first direct child whose kind id satisfies pred.
func (n Node[G]) FirstChild(pred func(kindID uint16) bool) (Node[G], bool) {
	if n.IsNull() {
		return Node[G]{}, false
	}
	cursor := sitter.NewTreeCursor(n.n)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return Node[G]{}, false
	}
	for {
		child := cursor.CurrentNode()
		if pred(uint16(child.Symbol())) {
			return Node[G]{n: child}, true
		}
		if !cursor.GoToNextSibling() {
			return Node[G]{}, false
		}
	}
}

// ForEachChild calls action once per direct child, left to right.
func (n Node[G]) ForEachChild(action func(Node[G])) {
	if n.IsNull() {
		return
	}
	cursor := sitter.NewTreeCursor(n.n)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return
	}
	for {
		action(Node[G]{n: cursor.CurrentNode()})
		if !cursor.GoToNextSibling() {
			return
		}
	}
}
