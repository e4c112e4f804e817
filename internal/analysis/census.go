package analysis

import (
	"codescope/internal/checker"
	"codescope/internal/syntax"
)

// Census counts the nodes of a tree falling into each category.
type Census struct {
	Nodes          int  `json:"nodes" yaml:"nodes" toml:"nodes" cbor:"nodes" msgpack:"nodes"`
	Comments       int  `json:"comments" yaml:"comments" toml:"comments" cbor:"comments" msgpack:"comments"`
	UsefulComments int  `json:"useful_comments" yaml:"useful_comments" toml:"useful_comments" cbor:"useful_comments" msgpack:"useful_comments"`
	ElseIfs        int  `json:"else_ifs" yaml:"else_ifs" toml:"else_ifs" cbor:"else_ifs" msgpack:"else_ifs"`
	Strings        int  `json:"strings" yaml:"strings" toml:"strings" cbor:"strings" msgpack:"strings"`
	Calls          int  `json:"calls" yaml:"calls" toml:"calls" cbor:"calls" msgpack:"calls"`
	Functions      int  `json:"functions" yaml:"functions" toml:"functions" cbor:"functions" msgpack:"functions"`
	FunctionSpaces int  `json:"function_spaces" yaml:"function_spaces" toml:"function_spaces" cbor:"function_spaces" msgpack:"function_spaces"`
	NonArguments   int  `json:"non_arguments" yaml:"non_arguments" toml:"non_arguments" cbor:"non_arguments" msgpack:"non_arguments"`
	Errors         int  `json:"errors" yaml:"errors" toml:"errors" cbor:"errors" msgpack:"errors"`
	Features       int  `json:"features" yaml:"features" toml:"features" cbor:"features" msgpack:"features"`
	HasErrors      bool `json:"has_errors" yaml:"has_errors" toml:"has_errors" cbor:"has_errors" msgpack:"has_errors"`
}

// Count takes a census of root and its descendants in a single traversal.
// Errors counts nodes that were themselves produced by error recovery.
func Count[G syntax.Grammar, C checker.Checker[G]](c C, root syntax.Node[G], source []byte) Census {
	census := Census{HasErrors: c.IsError(root)}
	root.VisitAll(func(n syntax.Node[G]) {
		census.Nodes++
		if c.IsComment(n) {
			census.Comments++
			if c.IsUsefulComment(n, source) {
				census.UsefulComments++
			}
		}
		if c.IsElseIf(n) {
			census.ElseIfs++
		}
		if c.IsString(n) {
			census.Strings++
		}
		if c.IsCall(n) {
			census.Calls++
		}
		if c.IsFunction(n) {
			census.Functions++
		}
		if c.IsFunctionSpace(n) {
			census.FunctionSpaces++
		}
		if c.IsNonArgument(n) {
			census.NonArguments++
		}
		if n.IsError() {
			census.Errors++
		}
		if c.IsFeature(n) {
			census.Features++
		}
	})
	return census
}

// Add accumulates other into c.
func (c *Census) Add(other Census) {
	c.Nodes += other.Nodes
	c.Comments += other.Comments
	c.UsefulComments += other.UsefulComments
	c.ElseIfs += other.ElseIfs
	c.Strings += other.Strings
	c.Calls += other.Calls
	c.Functions += other.Functions
	c.FunctionSpaces += other.FunctionSpaces
	c.NonArguments += other.NonArguments
	c.Errors += other.Errors
	c.Features += other.Features
	c.HasErrors = c.HasErrors || other.HasErrors
}
