package analysis

import (
	"bytes"

	"codescope/internal/checker"
	"codescope/internal/syntax"
)

type span struct{ start, end int }

// StripComments returns a copy of source without the comments a noise filter
// discards. Useful comments are kept verbatim. Comments separated only by
// blanks are removed as one run. A run alone on its line takes the whole line
// with it, and a trailing run takes the blanks before it.
func StripComments[G syntax.Grammar, C checker.Checker[G]](c C, root syntax.Node[G], source []byte) []byte {
	var runs []span
	last := -1
	root.VisitAll(func(n syntax.Node[G]) {
		if !c.IsComment(n) || c.IsUsefulComment(n, source) {
			return
		}
		start, end := int(n.StartByte()), int(n.EndByte())
		if end > len(source) || start < last {
			return
		}
		last = end
		// Some grammars include the line terminator in line comments.
		for end > start && (source[end-1] == '\n' || source[end-1] == '\r') {
			end--
		}
		if k := len(runs) - 1; k >= 0 && onlyBlanks(source[runs[k].end:start]) {
			runs[k].end = end
			return
		}
		runs = append(runs, span{start, end})
	})
	if len(runs) == 0 {
		return bytes.Clone(source)
	}

	out := make([]byte, 0, len(source))
	pos := 0
	for _, r := range runs {
		s := widen(source, r.start, r.end)
		if s.start < pos {
			s.start = pos
		}
		out = append(out, source[pos:s.start]...)
		pos = s.end
	}
	return append(out, source[pos:]...)
}

// widen grows a comment run over the surrounding blanks according to where
// the run sits on its line.
func widen(source []byte, start, end int) span {
	lead := start
	for lead > 0 && isBlank(source[lead-1]) {
		lead--
	}
	trail := end
	for trail < len(source) && isBlank(source[trail]) {
		trail++
	}

	atLineStart := lead == 0 || source[lead-1] == '\n'
	atLineEnd := trail == len(source) || source[trail] == '\n' || source[trail] == '\r'

	switch {
	case atLineStart && atLineEnd:
		if trail < len(source) && source[trail] == '\r' {
			trail++
		}
		if trail < len(source) && source[trail] == '\n' {
			trail++
		}
		return span{lead, trail}
	case atLineEnd:
		return span{lead, trail}
	default:
		return span{start, end}
	}
}

func onlyBlanks(b []byte) bool {
	for _, c := range b {
		if !isBlank(c) {
			return false
		}
	}
	return true
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
