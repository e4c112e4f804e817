// Package analysis holds passes written once against checker.Checker and the
// registry that instantiates them for every language variant.
package analysis

import (
	"fmt"
	"strings"

	"codescope/internal/checker"
	"codescope/internal/syntax"
)

// Category is one of the shared semantic predicates.
type Category int

const (
	Comment Category = iota
	UsefulComment
	ElseIf
	String
	Call
	Function
	FunctionSpace
	NonArgument
	ParseError
	Feature
)

var categoryNames = []string{
	Comment:       "comment",
	UsefulComment: "useful-comment",
	ElseIf:        "else-if",
	String:        "string",
	Call:          "call",
	Function:      "function",
	FunctionSpace: "function-space",
	NonArgument:   "non-argument",
	ParseError:    "error",
	Feature:       "feature",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("analysis.Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory maps a category name to its value.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q (want one of %s)", name, strings.Join(categoryNames, ", "))
}

// Matches evaluates one category on n. A useful comment must also be a comment.
func Matches[G syntax.Grammar, C checker.Checker[G]](c C, cat Category, n syntax.Node[G], source []byte) bool {
	switch cat {
	case Comment:
		return c.IsComment(n)
	case UsefulComment:
		return c.IsComment(n) && c.IsUsefulComment(n, source)
	case ElseIf:
		return c.IsElseIf(n)
	case String:
		return c.IsString(n)
	case Call:
		return c.IsCall(n)
	case Function:
		return c.IsFunction(n)
	case FunctionSpace:
		return c.IsFunctionSpace(n)
	case NonArgument:
		return c.IsNonArgument(n)
	case ParseError:
		return c.IsError(n)
	case Feature:
		return c.IsFeature(n)
	}
	return false
}
