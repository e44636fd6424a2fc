package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"
)

//go:embed builtin.json
var builtinJSON []byte

// ValidationError reports a catalog document that failed validation.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type document struct {
	Version   string     `json:"version"`
	Scenarios []Scenario `json:"scenarios"`
}

// Load reads and validates a catalog document from r.
func Load(r io.Reader) (*Catalog, error) {
	return load(r, "<reader>")
}

// LoadFile reads and validates the catalog document at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return load(f, path)
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return load(bytes.NewReader(builtinJSON), "builtin")
}

// MustBuiltin is like Builtin but panics on error.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}

func load(r io.Reader, source string) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	if !semver.IsValid(doc.Version) {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("version %q is not a semantic version", doc.Version)}
	}

	c, err := New(semver.Canonical(doc.Version), doc.Scenarios)
	if err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	return c, nil
}

// SameMajor reports whether two catalog versions share a major version.
// Empty versions are treated as compatible.
func SameMajor(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return semver.Major(a) == semver.Major(b)
}
