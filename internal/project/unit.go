package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

// UnitSource is a decoded compilation unit file. Identifiers and type
// expressions are trimmed and NFC-normalised but not resolved.
type UnitSource struct {
	Path      string
	Name      string
	Functions []FunctionSource
	Calls     []CallSource
	Digest    Digest
}

// FunctionSource is one [[function]] declaration.
type FunctionSource struct {
	Name    string
	Params  []string
	Returns string // empty when the function has no result
}

// CallSource is one [[call]] site.
type CallSource struct {
	Name string
	Args []string
}

type unitFile struct {
	Name      string          `toml:"name"`
	Functions []functionEntry `toml:"function"`
	Calls     []callEntry     `toml:"call"`
}

type functionEntry struct {
	Name    string   `toml:"name"`
	Params  []string `toml:"params"`
	Returns string   `toml:"returns"`
}

type callEntry struct {
	Name string   `toml:"name"`
	Args []string `toml:"args"`
}

// LoadUnit reads and decodes the unit at path.
func LoadUnit(path string) (*UnitSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit: %w", err)
	}
	return DecodeUnit(path, data)
}

// DecodeUnit decodes unit data read from path. An empty function name is
// kept as is; rejecting it is up to the analyzer.
func DecodeUnit(path string, data []byte) (*UnitSource, error) {
	var raw unitFile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	for i, c := range raw.Calls {
		if ident(c.Name) == "" {
			return nil, fmt.Errorf("%s: call[%d]: missing name", path, i)
		}
	}

	src := &UnitSource{
		Path:      path,
		Name:      ident(raw.Name),
		Functions: make([]FunctionSource, 0, len(raw.Functions)),
		Calls:     make([]CallSource, 0, len(raw.Calls)),
		Digest:    DigestOf(data),
	}
	if src.Name == "" {
		src.Name = strings.TrimSuffix(filepath.Base(path), UnitSuffix)
	}
	for _, f := range raw.Functions {
		src.Functions = append(src.Functions, FunctionSource{
			Name:    ident(f.Name),
			Params:  idents(f.Params),
			Returns: ident(f.Returns),
		})
	}
	for _, c := range raw.Calls {
		src.Calls = append(src.Calls, CallSource{
			Name: ident(c.Name),
			Args: idents(c.Args),
		})
	}
	return src, nil
}

func ident(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func idents(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = ident(s)
	}
	return out
}
