package checker

import (
	"regexp"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Both matchers are built on first use and only read afterwards.
var (
	bindgenMatcher = sync.OnceValue(func() *ahocorasick.Matcher {
		return ahocorasick.NewStringMatcher([]string{"<div rustbindgen"})
	})

	// codingDeclaration matches PEP 263 source encoding declarations.
	codingDeclaration = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)
)

func hasBindgenDirective(text []byte) bool {
	return len(text) > 0 && len(bindgenMatcher().MatchThreadSafe(text)) > 0
}
