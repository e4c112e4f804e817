package analysis

import (
	"context"
	"testing"

	"codescope/internal/lang"
	"codescope/internal/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, id lang.ID, src string) File {
	t.Helper()
	f, err := Open(context.Background(), id, []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

const rustSource = `/// cbindgen:ignore
// plain
fn f<'a>(x: &'a str) -> usize {
    if x.is_empty() { 0 } else if x.len() > 2 { g("s") } else { 1 }
}
`

func TestOpen_EveryVariant(t *testing.T) {
	for _, id := range lang.All() {
		t.Run(id.String(), func(t *testing.T) {
			f := open(t, id, "")
			assert.Equal(t, id, f.Language())
			assert.Equal(t, 1, f.Count().Nodes)
		})
	}

	_, err := Open(context.Background(), lang.ID(99), nil)
	assert.ErrorIs(t, err, lang.ErrUnsupported)
}

func TestCount(t *testing.T) {
	f := open(t, lang.Rust, rustSource)
	c := f.Count()

	assert.Equal(t, 2, c.Comments)
	assert.Equal(t, 1, c.UsefulComments)
	assert.Equal(t, 1, c.ElseIfs)
	assert.Equal(t, 1, c.Strings)
	assert.Equal(t, 3, c.Calls)
	assert.Equal(t, 1, c.Functions)
	assert.Equal(t, 2, c.FunctionSpaces, "source file and function")
	assert.GreaterOrEqual(t, c.Features, 2, "lifetime parameter and use")
	assert.Zero(t, c.Errors)
	assert.False(t, c.HasErrors)
	assert.False(t, f.HasErrors())

	var visited int
	for range f.Dump() {
		visited++
	}
	assert.Equal(t, visited, c.Nodes)
}

func TestCount_Errors(t *testing.T) {
	f := open(t, lang.Python, "def f(:\n")
	c := f.Count()
	assert.True(t, c.HasErrors)
	assert.True(t, f.HasErrors())
	assert.Positive(t, c.Errors)
}

func TestCensus_Add(t *testing.T) {
	total := Census{Nodes: 3, Comments: 1}
	total.Add(Census{Nodes: 2, Functions: 1, HasErrors: true})
	assert.Equal(t, Census{Nodes: 5, Comments: 1, Functions: 1, HasErrors: true}, total)
}

func TestFind(t *testing.T) {
	f := open(t, lang.Rust, rustSource)

	t.Run("By kind", func(t *testing.T) {
		recs := f.Find(Query{Kinds: []string{"if_expression"}})
		require.Len(t, recs, 2)
		assert.Equal(t, "if_expression", recs[0].Name)
		assert.Equal(t, uint32(4), recs[0].StartLine)
		assert.Equal(t, uint32(5), recs[0].StartColumn)
	})

	t.Run("By category", func(t *testing.T) {
		recs := f.Find(Query{Categories: []Category{ElseIf}})
		require.Len(t, recs, 1)
		assert.Equal(t, "if_expression", recs[0].Name)

		recs = f.Find(Query{Categories: []Category{UsefulComment}})
		require.Len(t, recs, 1)
		assert.Equal(t, uint32(1), recs[0].StartLine)
	})

	t.Run("Node listed once", func(t *testing.T) {
		recs := f.Find(Query{Kinds: []string{"function_item"}, Categories: []Category{Function, FunctionSpace}})
		require.Len(t, recs, 2)
		assert.Equal(t, "source_file", recs[0].Name)
		assert.Equal(t, "function_item", recs[1].Name)
	})

	t.Run("Empty query", func(t *testing.T) {
		assert.Empty(t, f.Find(Query{}))
	})
}

func TestDump(t *testing.T) {
	f := open(t, lang.Python, "x = 1\n")
	entries := f.Dump()
	require.NotEmpty(t, entries)
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, "module", entries[0].Node.Name)
	assert.Equal(t, 1, entries[1].Depth)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].Depth, entries[i-1].Depth+1, "pre-order depth grows by one at most")
	}
}

func TestStripComments(t *testing.T) {
	cases := []struct {
		name string
		id   lang.ID
		src  string
		want string
	}{
		{
			name: "rust keeps cbindgen",
			id:   lang.Rust,
			src:  "/// cbindgen:ignore\n// drop me\nfn f() {} // trailing\n",
			want: "/// cbindgen:ignore\nfn f() {}\n",
		},
		{
			name: "python keeps coding line",
			id:   lang.Python,
			src:  "# coding: utf-8\n# note\nx = 1  # why\n",
			want: "# coding: utf-8\nx = 1\n",
		},
		{
			name: "inline block comment",
			id:   lang.Cpp,
			src:  "int f(int a /* count */, int b);\n",
			want: "int f(int a , int b);\n",
		},
		{
			name: "crlf trailing comment keeps line ending",
			id:   lang.Cpp,
			src:  "int x; // a\r\nint y;\r\n",
			want: "int x;\r\nint y;\r\n",
		},
		{
			name: "crlf full line comment",
			id:   lang.Javascript,
			src:  "// note\r\nlet a = 1;\r\n",
			want: "let a = 1;\r\n",
		},
		{
			name: "several comments alone on a line",
			id:   lang.Cpp,
			src:  "/* a */ /* b */\nint x;\n",
			want: "int x;\n",
		},
		{
			name: "several trailing comments",
			id:   lang.Rust,
			src:  "fn f() {} /* a */ // b\n",
			want: "fn f() {}\n",
		},
		{
			name: "nothing to strip",
			id:   lang.Javascript,
			src:  "let a = 1;\n",
			want: "let a = 1;\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := open(t, tc.id, tc.src)
			assert.Equal(t, tc.want, string(f.StripComments()))
		})
	}
}

func TestFilterChanged(t *testing.T) {
	recs := []syntax.Record{
		{Name: "a", StartLine: 1, EndLine: 3},
		{Name: "b", StartLine: 5, EndLine: 9},
		{Name: "c", StartLine: 10, EndLine: 10},
	}
	got := FilterChanged(recs, []int{3, 10})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
	assert.Empty(t, FilterChanged(recs, nil))
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCategory("macro")
	assert.Error(t, err)
}
