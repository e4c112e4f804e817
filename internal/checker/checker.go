// Package checker maps each grammar's node kinds onto the shared semantic
// predicates used by analysis passes.
package checker

import (
	"codescope/internal/syntax"
)

// Checker classifies nodes of grammar G. Every method is a pure function of
// the node (and, for IsUsefulComment, the source bytes); none of them fail.
type Checker[G syntax.Grammar] interface {
	IsComment(n syntax.Node[G]) bool
	// IsUsefulComment reports comments a noise filter must keep, such as
	// binding-generator directives or encoding declarations.
	IsUsefulComment(n syntax.Node[G], source []byte) bool
	// IsElseIf reports an if construct that directly continues an else branch.
	IsElseIf(n syntax.Node[G]) bool
	IsString(n syntax.Node[G]) bool
	IsCall(n syntax.Node[G]) bool
	IsFunction(n syntax.Node[G]) bool
	// IsFunctionSpace reports scope constructs metrics are aggregated over
	// (translation units, classes, functions, impl blocks...).
	IsFunctionSpace(n syntax.Node[G]) bool
	// IsNonArgument reports punctuation and attribute tokens that are not
	// arguments of a call.
	IsNonArgument(n syntax.Node[G]) bool
	IsError(n syntax.Node[G]) bool
	// IsFeature reports constructs counted as a language-specific signal.
	IsFeature(n syntax.Node[G]) bool
}

// kinds holds the kind-id tables of one grammar.
type kinds struct {
	comment       kindSet
	str           kindSet
	call          kindSet
	function      kindSet
	functionSpace kindSet
	nonArgument   kindSet
	feature       kindSet

	// ifStatement and elseClause drive else-if detection; an empty
	// ifStatement table disables it.
	ifStatement kindSet
	elseClause  kindSet

	// tokenTree holds macro token-stream kinds whose comments are kept.
	tokenTree kindSet
}

// kindSource is implemented by zero-size types naming a grammar's tables.
type kindSource interface {
	kinds() *kinds
}

// base implements every predicate from the tables named by K. Variants embed
// it and override the predicates that need more than a table lookup.
type base[G syntax.Grammar, K kindSource] struct{}

func (base[G, K]) table() *kinds {
	var k K
	return k.kinds()
}

func (b base[G, K]) IsComment(n syntax.Node[G]) bool {
	return b.table().comment.Has(n.KindID())
}

func (base[G, K]) IsUsefulComment(syntax.Node[G], []byte) bool {
	return false
}

func (b base[G, K]) IsElseIf(n syntax.Node[G]) bool {
	return isElseIf(n, b.table())
}

func (b base[G, K]) IsString(n syntax.Node[G]) bool {
	return b.table().str.Has(n.KindID())
}

func (b base[G, K]) IsCall(n syntax.Node[G]) bool {
	return b.table().call.Has(n.KindID())
}

func (b base[G, K]) IsFunction(n syntax.Node[G]) bool {
	return b.table().function.Has(n.KindID())
}

func (b base[G, K]) IsFunctionSpace(n syntax.Node[G]) bool {
	return b.table().functionSpace.Has(n.KindID())
}

func (b base[G, K]) IsNonArgument(n syntax.Node[G]) bool {
	return b.table().nonArgument.Has(n.KindID())
}

func (base[G, K]) IsError(n syntax.Node[G]) bool {
	return n.HasError()
}

func (b base[G, K]) IsFeature(n syntax.Node[G]) bool {
	return b.table().feature.Has(n.KindID())
}

// isElseIf reports whether n is an if construct whose parent is an else
// clause. Grammar versions without an else clause wrapper attach the nested
// if directly as the alternative field of the outer one.
func isElseIf[G syntax.Grammar](n syntax.Node[G], k *kinds) bool {
	if !k.ifStatement.Has(n.KindID()) {
		return false
	}
	parent, ok := n.Parent()
	if !ok {
		return false
	}
	if k.elseClause.Has(parent.KindID()) {
		return true
	}
	if k.ifStatement.Has(parent.KindID()) {
		alt, ok := parent.ChildByField("alternative")
		return ok && alt.Same(n)
	}
	return false
}
