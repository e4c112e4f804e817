package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrBinaryStdout is returned when a binary format is sent to the console.
var ErrBinaryStdout = errors.New("binary output formats can only be written to files")

var log = commonlog.GetLogger("codescope.output")

// Writer emits one document per call. With an empty Dir every document goes
// to Stdout; otherwise each one lands in Dir under a name derived from its
// source path.
type Writer struct {
	Format Format
	// Pretty indents JSON and TOML. YAML is always block style.
	Pretty bool
	Dir    string
	Stdout io.Writer
}

// Write encodes data for sourcePath. TOML documents must be structs or maps.
func (w *Writer) Write(data any, sourcePath string) error {
	if w.Dir == "" {
		if w.Format.Binary() {
			return fmt.Errorf("%w: %s", ErrBinaryStdout, w.Format)
		}
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		return Encode(out, w.Format, w.Pretty, data)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, w.Format, w.Pretty, data); err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(w.Dir, FileName(sourcePath, w.Format))
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	log.Debugf("wrote %s", target)
	return nil
}

// Encode serializes data to out in format f.
func Encode(out io.Writer, f Format, pretty bool, data any) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(out)
		if pretty {
			enc.SetIndent("", "  ")
		}
		err = enc.Encode(data)
	case TOML:
		enc := toml.NewEncoder(out)
		if !pretty {
			enc.Indent = ""
		}
		err = enc.Encode(data)
	case YAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err = enc.Encode(data); err == nil {
			err = enc.Close()
		}
	case CBOR:
		err = cbor.NewEncoder(out).Encode(data)
	case MsgPack:
		err = msgpack.NewEncoder(out).Encode(data)
	default:
		return fmt.Errorf("unknown output format %v", f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// FileName derives the output file name for sourcePath. A single leading
// separator and a single leading "./" are dropped, every ".." segment becomes
// "_", and the remaining segments are joined with "_" before the format
// extension is appended.
func FileName(sourcePath string, f Format) string {
	p := filepath.ToSlash(sourcePath)
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimPrefix(p, "./")

	var parts []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			parts = append(parts, "_")
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "_") + f.Ext()
}
