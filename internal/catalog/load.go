package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLessonID is the lesson served when none is requested.
const DefaultLessonID = "mars-rover-mission"

//go:embed lessons/*.yaml
var builtinFS embed.FS

// Parse decodes a YAML or JSON lesson document, checks it against the
// document schema, and validates it. source names the document in errors.
func Parse(source string, data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if doc == nil {
		return nil, &ConfigError{Source: source, Err: errors.New("empty document")}
	}
	if err := validateShape(doc); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}

	var script LessonScript
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}

	c, err := New(script)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = source
		}
		return nil, err
	}
	return c, nil
}

// Load reads and parses a lesson document from disk.
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ConfigError{Source: filename, Err: fmt.Errorf("read: %w", err)}
	}
	return Parse(filename, data)
}

// Builtin returns one of the lessons shipped with the binary.
func Builtin(id string) (*Catalog, error) {
	name := path.Join("lessons", id+".yaml")
	data, err := builtinFS.ReadFile(name)
	if err != nil {
		return nil, &ConfigError{Source: id, Err: fmt.Errorf("unknown builtin lesson %q", id)}
	}
	return Parse(name, data)
}

// BuiltinIDs lists the ids of the shipped lessons in sorted order.
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("lessons")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// Default returns the default builtin lesson.
func Default() (*Catalog, error) {
	return Builtin(DefaultLessonID)
}

// Resolve loads filename when it is non-empty, otherwise the default lesson.
func Resolve(filename string) (*Catalog, error) {
	if filename == "" {
		return Default()
	}
	return Load(filename)
}
