package checker

import (
	"bytes"
	"sync"

	"codescope/internal/grammar"
	"codescope/internal/syntax"
)

var rustTable = sync.OnceValue(func() *kinds {
	l := grammar.Rust{}.Language()
	return &kinds{
		comment:  newKindSet(l, "line_comment", "block_comment"),
		str:      newKindSet(l, "string_literal", "raw_string_literal"),
		call:     newKindSet(l, "call_expression"),
		function: newKindSet(l, "function_item", "closure_expression"),
		functionSpace: newKindSet(l,
			"source_file",
			"function_item",
			"impl_item",
			"trait_item",
			"closure_expression",
		),
		nonArgument: newKindSet(l, `"("`, `","`, `")"`, "attribute_item"),
		feature: newKindSet(l,
			"lifetime",
			"for_lifetimes",
			"macro_definition",
			"macro_rule",
			`"macro_rules!"`,
			"macro_invocation",
			"trait_bounds",
			"higher_ranked_trait_bound",
			"removed_trait_bound",
			`"where"`,
			"where_clause",
			"where_predicate",
			`"async"`,
			"async_block",
			`"await"`,
			"await_expression",
			`"unsafe"`,
			"unsafe_block",
			`"trait"`,
			"trait_item",
			"closure_expression",
			"closure_parameters",
		),
		ifStatement: newKindSet(l, "if_expression"),
		elseClause:  newKindSet(l, "else_clause"),
		tokenTree:   newKindSet(l, "token_tree"),
	}
})

type rustKinds struct{}

func (rustKinds) kinds() *kinds { return rustTable() }

type Rust struct {
	base[grammar.Rust, rustKinds]
}

var cbindgenPrefix = []byte("/// cbindgen:")

// IsUsefulComment keeps comments inside macro token trees, which are part of
// the macro input, and cbindgen annotations.
func (Rust) IsUsefulComment(n syntax.Node[grammar.Rust], source []byte) bool {
	if parent, ok := n.Parent(); ok && rustTable().tokenTree.Has(parent.KindID()) {
		return true
	}
	return bytes.HasPrefix(n.Text(source), cbindgenPrefix)
}

var _ Checker[grammar.Rust] = Rust{}
