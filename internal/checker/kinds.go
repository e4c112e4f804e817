package checker

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// kindSet is a membership table indexed by kind id. The zero value is empty.
type kindSet []bool

// Has reports whether id is in the set.
func (s kindSet) Has(id uint16) bool {
	return int(id) < len(s) && s[id]
}

func (s kindSet) empty() bool {
	for _, v := range s {
		if v {
			return false
		}
	}
	return true
}

// newKindSet resolves kind names against the symbol table of lang. Bare names
// select named nodes; quoted names such as `"("` select anonymous tokens.
// Every symbol carrying a listed name is included, and names the grammar does
// not define resolve to nothing.
func newKindSet(lang *sitter.Language, names ...string) kindSet {
	if len(names) == 0 {
		return nil
	}

	named := make(map[string]bool)
	anonymous := make(map[string]bool)
	for _, name := range names {
		if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
			anonymous[name[1:len(name)-1]] = true
		} else {
			named[name] = true
		}
	}

	total := lang.SymbolCount()
	set := make(kindSet, total)
	for i := uint32(0); i < total; i++ {
		sym := sitter.Symbol(i)
		switch lang.SymbolType(sym) {
		case sitter.SymbolTypeRegular:
			set[i] = named[lang.SymbolName(sym)]
		case sitter.SymbolTypeAnonymous:
			set[i] = anonymous[lang.SymbolName(sym)]
		}
	}
	return set
}
