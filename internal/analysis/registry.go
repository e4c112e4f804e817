package analysis

import (
	"context"
	"fmt"

	"codescope/internal/checker"
	"codescope/internal/grammar"
	"codescope/internal/lang"
	"codescope/internal/syntax"
)

// File is one parsed source file with every pass bound to its variant's
// checker. Callers must Close it.
type File interface {
	Language() lang.ID
	HasErrors() bool
	Count() Census
	Find(q Query) []syntax.Record
	Dump() []Entry
	StripComments() []byte
	Close()
}

type opener func(ctx context.Context, id lang.ID, source []byte) (File, error)

// openers is the variant table. Adding a variant means adding a grammar type,
// a checker and one line here.
var openers = map[lang.ID]opener{
	lang.Preproc:    bind[grammar.Preproc](checker.Preproc{}),
	lang.Ccomment:   bind[grammar.Ccomment](checker.Ccomment{}),
	lang.Cpp:        bind[grammar.Cpp](checker.Cpp{}),
	lang.Python:     bind[grammar.Python](checker.Python{}),
	lang.Java:       bind[grammar.Java](checker.Java{}),
	lang.Mozjs:      bind[grammar.Mozjs](checker.Mozjs{}),
	lang.Javascript: bind[grammar.Javascript](checker.Javascript{}),
	lang.Typescript: bind[grammar.Typescript](checker.Typescript{}),
	lang.Tsx:        bind[grammar.Tsx](checker.Tsx{}),
	lang.Rust:       bind[grammar.Rust](checker.Rust{}),
}

// Open parses source as variant id.
func Open(ctx context.Context, id lang.ID, source []byte) (File, error) {
	open, ok := openers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", lang.ErrUnsupported, id)
	}
	return open(ctx, id, source)
}

func bind[G syntax.Grammar, C checker.Checker[G]](c C) opener {
	return func(ctx context.Context, id lang.ID, source []byte) (File, error) {
		tree, err := syntax.Parse[G](ctx, source)
		if err != nil {
			return nil, err
		}
		return &file[G, C]{id: id, tree: tree, checker: c}, nil
	}
}

type file[G syntax.Grammar, C checker.Checker[G]] struct {
	id      lang.ID
	tree    *syntax.Tree[G]
	checker C
}

func (f *file[G, C]) Language() lang.ID { return f.id }

func (f *file[G, C]) HasErrors() bool {
	return f.checker.IsError(f.tree.Root())
}

func (f *file[G, C]) Count() Census {
	return Count(f.checker, f.tree.Root(), f.tree.Source())
}

func (f *file[G, C]) Find(q Query) []syntax.Record {
	return Find(f.checker, f.tree.Root(), f.tree.Source(), q)
}

func (f *file[G, C]) Dump() []Entry {
	return Dump(f.tree.Root())
}

func (f *file[G, C]) StripComments() []byte {
	return StripComments(f.checker, f.tree.Root(), f.tree.Source())
}

func (f *file[G, C]) Close() {
	f.tree.Close()
}
