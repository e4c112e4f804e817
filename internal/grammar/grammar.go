// Package grammar holds one marker type per supported language variant. Each
// type pins a variant to the tree-sitter grammar that produces its trees, so
// nodes of different variants have different Go types.
package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Preproc is the preprocessor-only view of C sources.
type Preproc struct{}

func (Preproc) Language() *sitter.Language { return c.GetLanguage() }
func (Preproc) Name() string               { return "preproc" }

// Ccomment is the comment-only view of C and C++ sources.
type Ccomment struct{}

func (Ccomment) Language() *sitter.Language { return cpp.GetLanguage() }
func (Ccomment) Name() string               { return "ccomment" }

type Cpp struct{}

func (Cpp) Language() *sitter.Language { return cpp.GetLanguage() }
func (Cpp) Name() string               { return "cpp" }

type Python struct{}

func (Python) Language() *sitter.Language { return python.GetLanguage() }
func (Python) Name() string               { return "python" }

type Java struct{}

func (Java) Language() *sitter.Language { return java.GetLanguage() }
func (Java) Name() string               { return "java" }

// Mozjs is JavaScript as written in the Mozilla tree (.jsm modules).
type Mozjs struct{}

func (Mozjs) Language() *sitter.Language { return javascript.GetLanguage() }
func (Mozjs) Name() string               { return "mozjs" }

type Javascript struct{}

func (Javascript) Language() *sitter.Language { return javascript.GetLanguage() }
func (Javascript) Name() string               { return "javascript" }

type Typescript struct{}

func (Typescript) Language() *sitter.Language { return typescript.GetLanguage() }
func (Typescript) Name() string               { return "typescript" }

type Tsx struct{}

func (Tsx) Language() *sitter.Language { return tsx.GetLanguage() }
func (Tsx) Name() string               { return "tsx" }

type Rust struct{}

func (Rust) Language() *sitter.Language { return rust.GetLanguage() }
func (Rust) Name() string               { return "rust" }
