package checker

import (
	"sync"

	"codescope/internal/grammar"
	"codescope/internal/syntax"
)

var pythonTable = sync.OnceValue(func() *kinds {
	l := grammar.Python{}.Language()
	return &kinds{
		comment:       newKindSet(l, "comment"),
		str:           newKindSet(l, "string", "concatenated_string"),
		call:          newKindSet(l, "call"),
		function:      newKindSet(l, "function_definition"),
		functionSpace: newKindSet(l, "module", "function_definition", "class_definition"),
		nonArgument:   newKindSet(l, `"("`, `","`, `")"`),
	}
})

type pythonKinds struct{}

func (pythonKinds) kinds() *kinds { return pythonTable() }

type Python struct {
	base[grammar.Python, pythonKinds]
}

// IsUsefulComment keeps a source encoding declaration on the first or second
// line of the file.
func (Python) IsUsefulComment(n syntax.Node[grammar.Python], source []byte) bool {
	if n.StartPosition().Row > 1 {
		return false
	}
	text := n.Text(source)
	return text != nil && codingDeclaration.Match(text)
}

var _ Checker[grammar.Python] = Python{}
