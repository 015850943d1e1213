package path

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed paths.schema.json
var pathsSchemaJSON []byte

const pathsSchemaURL = "paths.schema.json"

var (
	// ErrEmptyPath is returned for a path entry without edges.
	ErrEmptyPath = errors.New("empty path")

	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// EdgeEntry is one path position in a paths document.
type EdgeEntry struct {
	ID            uint64 `json:"id" yaml:"id"`
	Gap           int    `json:"gap,omitempty" yaml:"gap,omitempty"`
	TrashPrevious uint32 `json:"trash_previous,omitempty" yaml:"trash_previous,omitempty"`
	TrashCurrent  uint32 `json:"trash_current,omitempty" yaml:"trash_current,omitempty"`
}

type Entry struct {
	Name             string      `json:"name,omitempty" yaml:"name,omitempty"`
	InterstrandBulge bool        `json:"interstrand_bulge,omitempty" yaml:"interstrand_bulge,omitempty"`
	Edges            []EdgeEntry `json:"edges" yaml:"edges"`
}

// Document is the on-disk list of paths produced by path extension.
type Document struct {
	Paths []Entry `json:"paths" yaml:"paths"`
}

// LoadDocument reads and validates a YAML (or JSON) paths file.
func LoadDocument(file string) (*Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open paths file: %w", err)
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocument decodes r and validates it against the paths schema.
func ParseDocument(r io.Reader) (*Document, error) {
	var generic any
	if err := yaml.NewDecoder(r).Decode(&generic); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("failed to decode paths document: %w", err)
	}

	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize paths document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to normalize paths document: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile paths schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("paths schema validation failed: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode paths document: %w", err)
	}
	return &doc, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(pathsSchemaURL, bytes.NewReader(pathsSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(pathsSchemaURL)
	})
	return compiledSchema, schemaErr
}

// EdgeChecker is a Graph that can confirm an edge exists.
type EdgeChecker interface {
	Graph
	HasEdge(e EdgeID) bool
}

// Build turns the document into path pairs over g. The returned names are
// aligned with the container's pairs; unnamed entries get "path_<n>".
func (d *Document) Build(g EdgeChecker) (*Container, []string, error) {
	c := NewContainer()
	names := make([]string, 0, len(d.Paths))
	for n, entry := range d.Paths {
		if len(entry.Edges) == 0 {
			return nil, nil, fmt.Errorf("path %d: %w", n, ErrEmptyPath)
		}
		p := &Path{InterstrandBulge: entry.InterstrandBulge}
		for _, e := range entry.Edges {
			id := EdgeID(e.ID)
			if !g.HasEdge(id) {
				return nil, nil, fmt.Errorf("path %d references unknown edge %d", n, e.ID)
			}
			p.PushBack(id, Gap{Gap: e.Gap, TrashPrevious: e.TrashPrevious, TrashCurrent: e.TrashCurrent})
		}
		c.Add(p, g)

		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("path_%d", n)
		}
		names = append(names, name)
	}
	return c, names, nil
}

// NewDocument captures the forward paths of c.
func NewDocument(c *Container, names []string) *Document {
	d := &Document{}
	for i, pair := range c.Pairs() {
		entry := Entry{InterstrandBulge: pair.Path.InterstrandBulge}
		if i < len(names) {
			entry.Name = names[i]
		}
		for j := 0; j < pair.Path.Size(); j++ {
			gap := pair.Path.GapInfoAt(j)
			entry.Edges = append(entry.Edges, EdgeEntry{
				ID:            uint64(pair.Path.At(j)),
				Gap:           gap.Gap,
				TrashPrevious: gap.TrashPrevious,
				TrashCurrent:  gap.TrashCurrent,
			})
		}
		d.Paths = append(d.Paths, entry)
	}
	return d
}

// Write encodes d as YAML.
func (d *Document) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode paths document: %w", err)
	}
	return enc.Close()
}
