package checker

import (
	"sync"

	"codescope/internal/grammar"
	"codescope/internal/syntax"
)

var (
	preprocTable = sync.OnceValue(func() *kinds {
		l := grammar.Preproc{}.Language()
		return &kinds{
			comment: newKindSet(l, "comment"),
			str:     newKindSet(l, "string_literal", "raw_string_literal"),
		}
	})

	ccommentTable = sync.OnceValue(func() *kinds {
		l := grammar.Ccomment{}.Language()
		return &kinds{
			comment: newKindSet(l, "comment"),
			str:     newKindSet(l, "string_literal", "raw_string_literal"),
		}
	})

	cppTable = sync.OnceValue(func() *kinds {
		l := grammar.Cpp{}.Language()
		return &kinds{
			comment:  newKindSet(l, "comment"),
			str:      newKindSet(l, "string_literal", "concatenated_string", "raw_string_literal"),
			call:     newKindSet(l, "call_expression"),
			function: newKindSet(l, "function_definition"),
			functionSpace: newKindSet(l,
				"translation_unit",
				"function_definition",
				"struct_specifier",
				"class_specifier",
				"namespace_definition",
			),
			nonArgument: newKindSet(l, `"("`, `","`, `")"`),
			ifStatement: newKindSet(l, "if_statement"),
			elseClause:  newKindSet(l, "else_clause"),
		}
	})
)

type preprocKinds struct{}

func (preprocKinds) kinds() *kinds { return preprocTable() }

type ccommentKinds struct{}

func (ccommentKinds) kinds() *kinds { return ccommentTable() }

type cppKinds struct{}

func (cppKinds) kinds() *kinds { return cppTable() }

// Preproc classifies the preprocessor view of C sources: only comments and
// string literals are recognised.
type Preproc struct {
	base[grammar.Preproc, preprocKinds]
}

// Ccomment classifies the comment view of C and C++ sources.
type Ccomment struct {
	base[grammar.Ccomment, ccommentKinds]
}

// IsUsefulComment keeps rust-bindgen annotations.
func (Ccomment) IsUsefulComment(n syntax.Node[grammar.Ccomment], source []byte) bool {
	return hasBindgenDirective(n.Text(source))
}

type Cpp struct {
	base[grammar.Cpp, cppKinds]
}

// IsUsefulComment keeps rust-bindgen annotations.
func (Cpp) IsUsefulComment(n syntax.Node[grammar.Cpp], source []byte) bool {
	return hasBindgenDirective(n.Text(source))
}

var (
	_ Checker[grammar.Preproc]  = Preproc{}
	_ Checker[grammar.Ccomment] = Ccomment{}
	_ Checker[grammar.Cpp]      = Cpp{}
)
