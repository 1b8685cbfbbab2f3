package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/notebook/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write the notes file in a specific format.
type Serializer interface {
	// Parse reads the whole collection from r.
	Parse(r io.Reader) ([]core.Note, error)
	// Serialize converts the collection to bytes.
	Serialize(notes []core.Note) ([]byte, error)
	// Format names the format (e.g. "json").
	Format() string
}

// document is the on-disk envelope: {"notes": [...]}.
type document struct {
	Notes []core.Note `json:"notes" yaml:"notes"`
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// serializerFor picks the serializer matching the extension of filename.
func serializerFor(filename string, registry map[string]Serializer) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	s, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %q", ext)
	}
	return s, nil
}

// normalize guarantees a non-nil slice so that empty collections encode as [].
func normalize(notes []core.Note) []core.Note {
	if notes == nil {
		return []core.Note{}
	}
	return notes
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Format() string { return "json" }

func (s *JSONSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil
	}

	// Unmarshal rejects trailing data after the document.
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return normalize(doc.Notes), nil
}

func (s *JSONSerializer) Serialize(notes []core.Note) ([]byte, error) {
	return json.MarshalIndent(document{Notes: normalize(notes)}, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Format() string { return "yaml" }

func (s *YAMLSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return normalize(doc.Notes), nil
}

func (s *YAMLSerializer) Serialize(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(document{Notes: normalize(notes)}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
