// Package output serializes analysis results to the console or to one file
// per analyzed source.
package output

import (
	"fmt"
	"strings"
)

type Format int

const (
	CBOR Format = iota
	JSON
	TOML
	YAML
	MsgPack
)

var formats = []struct {
	name string
	ext  string
}{
	CBOR:    {"cbor", ".cbor"},
	JSON:    {"json", ".json"},
	TOML:    {"toml", ".toml"},
	YAML:    {"yaml", ".yml"},
	MsgPack: {"msgpack", ".msgpack"},
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("output.Format(%d)", int(f))
	}
	return formats[f].name
}

// Ext returns the file extension used for the format, dot included.
func (f Format) Ext() string {
	if !f.valid() {
		return ""
	}
	return formats[f].ext
}

// Binary reports formats that cannot be printed to a console.
func (f Format) Binary() bool {
	return f == CBOR || f == MsgPack
}

func (f Format) valid() bool {
	return f >= 0 && int(f) < len(formats)
}

// All returns every format in declaration order.
func All() []Format {
	out := make([]Format, len(formats))
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

// ParseFormat maps a format name to its value. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "yml" {
		return YAML, nil
	}
	for i, f := range formats {
		if f.name == name {
			return Format(i), nil
		}
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return 0, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(names, ", "))
}
