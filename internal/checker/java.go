package checker

import (
	"sync"

	"codescope/internal/grammar"
)

var javaTable = sync.OnceValue(func() *kinds {
	l := grammar.Java{}.Language()
	return &kinds{
		// Older grammar versions use a single comment kind.
		comment:       newKindSet(l, "comment", "line_comment", "block_comment"),
		str:           newKindSet(l, "string_literal"),
		call:          newKindSet(l, "method_invocation"),
		function:      newKindSet(l, "method_declaration"),
		functionSpace: newKindSet(l, "program", "class_declaration"),
	}
})

type javaKinds struct{}

func (javaKinds) kinds() *kinds { return javaTable() }

type Java struct {
	base[grammar.Java, javaKinds]
}

var _ Checker[grammar.Java] = Java{}
