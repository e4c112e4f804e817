package checker

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"codescope/internal/grammar"
)

// ecmaKinds builds the tables shared by the JavaScript and TypeScript
// grammars. "function" names the function expression node of older grammar
// versions; newer ones call it function_expression.
func ecmaKinds(l *sitter.Language) *kinds {
	functions := []string{
		"function",
		"function_expression",
		"generator_function",
		"function_declaration",
		"generator_function_declaration",
		"method_definition",
		"arrow_function",
	}
	spaces := append([]string{"program", "class", "class_declaration"}, functions...)

	return &kinds{
		comment:       newKindSet(l, "comment"),
		str:           newKindSet(l, "string", "template_string"),
		call:          newKindSet(l, "call_expression"),
		function:      newKindSet(l, functions...),
		functionSpace: newKindSet(l, spaces...),
		nonArgument:   newKindSet(l, `"("`, `","`, `")"`),
		ifStatement:   newKindSet(l, "if_statement"),
		elseClause:    newKindSet(l, "else_clause"),
	}
}

var (
	javascriptTable = sync.OnceValue(func() *kinds { return ecmaKinds(grammar.Javascript{}.Language()) })
	typescriptTable = sync.OnceValue(func() *kinds { return ecmaKinds(grammar.Typescript{}.Language()) })
	tsxTable        = sync.OnceValue(func() *kinds { return ecmaKinds(grammar.Tsx{}.Language()) })
)

type mozjsKinds struct{}

// Mozjs shares the JavaScript grammar, so it shares its tables too.
func (mozjsKinds) kinds() *kinds { return javascriptTable() }

type javascriptKinds struct{}

func (javascriptKinds) kinds() *kinds { return javascriptTable() }

type typescriptKinds struct{}

func (typescriptKinds) kinds() *kinds { return typescriptTable() }

type tsxKinds struct{}

func (tsxKinds) kinds() *kinds { return tsxTable() }

type Mozjs struct {
	base[grammar.Mozjs, mozjsKinds]
}

type Javascript struct {
	base[grammar.Javascript, javascriptKinds]
}

type Typescript struct {
	base[grammar.Typescript, typescriptKinds]
}

type Tsx struct {
	base[grammar.Tsx, tsxKinds]
}

var (
	_ Checker[grammar.Mozjs]      = Mozjs{}
	_ Checker[grammar.Javascript] = Javascript{}
	_ Checker[grammar.Typescript] = Typescript{}
	_ Checker[grammar.Tsx]        = Tsx{}
)
