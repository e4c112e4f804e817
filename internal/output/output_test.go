package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codescope/internal/syntax"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type report struct {
	Path  string          `json:"path" yaml:"path" toml:"path" cbor:"path" msgpack:"path"`
	Nodes []syntax.Record `json:"nodes" yaml:"nodes" toml:"nodes" cbor:"nodes" msgpack:"nodes"`
}

var sample = report{
	Path: "a.rs",
	Nodes: []syntax.Record{
		{Kind: 7, Name: "function_item", StartLine: 1, StartColumn: 1, EndLine: 3, EndColumn: 2},
	},
}

func TestFileName(t *testing.T) {
	cases := []struct {
		in   string
		f    Format
		want string
	}{
		{"./a/../b/c.rs", JSON, "a___b_c.rs.json"},
		{"/abs/x.py", YAML, "abs_x.py.yml"},
		{"src/main.cpp", CBOR, "src_main.cpp.cbor"},
		{"../up.js", TOML, "__up.js.toml"},
		{"a//b/./c.ts", MsgPack, "a_b_c.ts.msgpack"},
		{"plain.java", JSON, "plain.java.json"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FileName(tc.in, tc.f))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range All() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, YAML, got)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	assert.True(t, CBOR.Binary())
	assert.True(t, MsgPack.Binary())
	assert.False(t, JSON.Binary())
	assert.Empty(t, Format(42).Ext())
}

func TestWriter_Stdout(t *testing.T) {
	t.Run("Binary rejected", func(t *testing.T) {
		for _, f := range []Format{CBOR, MsgPack} {
			var buf bytes.Buffer
			w := &Writer{Format: f, Stdout: &buf}
			err := w.Write(sample, "a.rs")
			assert.ErrorIs(t, err, ErrBinaryStdout)
			assert.Zero(t, buf.Len())
		}
	})

	t.Run("JSON compact and pretty", func(t *testing.T) {
		var compact, pretty bytes.Buffer
		require.NoError(t, (&Writer{Format: JSON, Stdout: &compact}).Write(sample, "a.rs"))
		require.NoError(t, (&Writer{Format: JSON, Pretty: true, Stdout: &pretty}).Write(sample, "a.rs"))

		assert.NotContains(t, compact.String(), "\n  ")
		assert.Contains(t, pretty.String(), "\n  \"path\": \"a.rs\"")

		var decoded report
		require.NoError(t, json.Unmarshal(compact.Bytes(), &decoded))
		assert.Equal(t, sample, decoded)
		assert.Contains(t, compact.String(), `"start_line":1`)
	})

	t.Run("TOML", func(t *testing.T) {
		var compact, pretty bytes.Buffer
		require.NoError(t, (&Writer{Format: TOML, Stdout: &compact}).Write(sample, "a.rs"))
		require.NoError(t, (&Writer{Format: TOML, Pretty: true, Stdout: &pretty}).Write(sample, "a.rs"))

		assert.Contains(t, compact.String(), `path = "a.rs"`)
		assert.Contains(t, compact.String(), "[[nodes]]")
		assert.NotContains(t, compact.String(), "  name")
		assert.Contains(t, pretty.String(), "  name")
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Writer{Format: YAML, Stdout: &buf}).Write(sample, "a.rs"))

		var decoded report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, sample, decoded)
	})
}

func TestWriter_Dir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	t.Run("CBOR", func(t *testing.T) {
		w := &Writer{Format: CBOR, Dir: dir}
		require.NoError(t, w.Write(sample, "./src/../lib/a.rs"))

		data, err := os.ReadFile(filepath.Join(dir, "src___lib_a.rs.cbor"))
		require.NoError(t, err)
		var decoded report
		require.NoError(t, cbor.Unmarshal(data, &decoded))
		assert.Equal(t, sample, decoded)
	})

	t.Run("MsgPack", func(t *testing.T) {
		w := &Writer{Format: MsgPack, Dir: dir}
		require.NoError(t, w.Write(sample, "/tmp/b.rs"))

		data, err := os.ReadFile(filepath.Join(dir, "tmp_b.rs.msgpack"))
		require.NoError(t, err)
		var decoded report
		require.NoError(t, msgpack.Unmarshal(data, &decoded))
		assert.Equal(t, sample, decoded)
	})

	t.Run("Unwritable directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		w := &Writer{Format: JSON, Dir: blocker}
		assert.Error(t, w.Write(sample, "a.rs"))
	})
}
