package analysis

import (
	"codescope/internal/checker"
	"codescope/internal/syntax"
)

// Query selects nodes by kind name or by category. A node matches when any
// listed kind or category applies to it.
type Query struct {
	Kinds      []string
	Categories []Category
}

// Empty reports whether the query can match nothing.
func (q Query) Empty() bool {
	return len(q.Kinds) == 0 && len(q.Categories) == 0
}

// Find returns the records of all matching nodes in traversal order.
func Find[G syntax.Grammar, C checker.Checker[G]](c C, root syntax.Node[G], source []byte, q Query) []syntax.Record {
	if q.Empty() {
		return nil
	}
	kinds := make(map[string]bool, len(q.Kinds))
	for _, k := range q.Kinds {
		kinds[k] = true
	}

	var out []syntax.Record
	root.VisitAll(func(n syntax.Node[G]) {
		if kinds[n.KindName()] {
			out = append(out, n.Record())
			return
		}
		for _, cat := range q.Categories {
			if Matches(c, cat, n, source) {
				out = append(out, n.Record())
				return
			}
		}
	})
	return out
}

// Entry is one line of a tree dump.
type Entry struct {
	Depth int           `json:"depth" yaml:"depth" toml:"depth" cbor:"depth" msgpack:"depth"`
	Node  syntax.Record `json:"node" yaml:"node" toml:"node" cbor:"node" msgpack:"node"`
}

// Dump lists every node of the tree with its depth below root.
func Dump[G syntax.Grammar](root syntax.Node[G]) []Entry {
	var out []Entry
	root.WalkDepth(func(n syntax.Node[G], depth int) bool {
		out = append(out, Entry{Depth: depth, Node: n.Record()})
		return true
	})
	return out
}
