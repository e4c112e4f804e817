// Package lang enumerates the supported language variants.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ID identifies one supported language variant.
type ID int

const (
	Preproc ID = iota
	Ccomment
	Cpp
	Python
	Java
	Mozjs
	Javascript
	Typescript
	Tsx
	Rust

	count
)

// ErrUnsupported is returned when a name or path maps to no variant.
var ErrUnsupported = errors.New("unsupported language")

var names = [count]string{
	Preproc:    "preproc",
	Ccomment:   "ccomment",
	Cpp:        "cpp",
	Python:     "python",
	Java:       "java",
	Mozjs:      "mozjs",
	Javascript: "javascript",
	Typescript: "typescript",
	Tsx:        "tsx",
	Rust:       "rust",
}

// Preproc and Ccomment are specialised views and are only chosen by name.
var extensions = [count][]string{
	Cpp:        {".c", ".h", ".cc", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx", ".inl", ".m", ".mm"},
	Python:     {".py"},
	Java:       {".java"},
	Mozjs:      {".jsm"},
	Javascript: {".js", ".jsx", ".mjs", ".cjs"},
	Typescript: {".ts", ".mts", ".cts"},
	Tsx:        {".tsx"},
	Rust:       {".rs"},
}

var byExtension = func() map[string]ID {
	m := make(map[string]ID)
	for id, exts := range extensions {
		for _, ext := range exts {
			m[ext] = ID(id)
		}
	}
	return m
}()

// All returns every variant in declaration order.
func All() []ID {
	ids := make([]ID, count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

func (id ID) String() string {
	if id < 0 || id >= count {
		return fmt.Sprintf("lang.ID(%d)", int(id))
	}
	return names[id]
}

// Valid reports whether id is one of the declared variants.
func (id ID) Valid() bool {
	return id >= 0 && id < count
}

// Extensions returns the file extensions detected as id.
func (id ID) Extensions() []string {
	if !id.Valid() {
		return nil
	}
	return append([]string(nil), extensions[id]...)
}

// ParseID maps a variant name, case-insensitively, to its ID.
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range names {
		if n == name {
			return ID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// FromPath detects the variant of a source file from its extension.
func FromPath(path string) (ID, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if id, ok := byExtension[ext]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: file type %q", ErrUnsupported, ext)
}
