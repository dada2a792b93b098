// Package catalog holds assessment banks shipped as YAML documents.
package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"career-fit-service/internal/domain"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed assessments/*.yaml
var builtinFS embed.FS

const documentPattern = "**/*.{yaml,yml}"

// Catalog is an immutable set of validated assessments keyed by id.
type Catalog struct {
	items map[string]domain.Assessment
}

// Builtin returns the assessments compiled into the binary.
func Builtin() (*Catalog, error) {
	return LoadFS(builtinFS)
}

// LoadDir reads every YAML document below dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every YAML document in fsys. Duplicate ids are rejected.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	matches, err := doublestar.Glob(fsys, documentPattern)
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s: %w", documentPattern, err)
	}
	sort.Strings(matches)

	c := &Catalog{items: make(map[string]domain.Assessment, len(matches))}
	for _, path := range matches {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		a, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := c.items[a.ID]; dup {
			return nil, fmt.Errorf("%s: %w", path, &domain.ConfigurationError{Field: "id", Reason: fmt.Sprintf("duplicate assessment %q", a.ID)})
		}
		c.items[a.ID] = a
	}
	return c, nil
}

// Decode parses one YAML assessment, checks it against the schema and
// validates the resulting configuration.
func Decode(data []byte) (domain.Assessment, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Assessment{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return domain.Assessment{}, &domain.ConfigurationError{Field: "document", Reason: err.Error()}
	}

	var a domain.Assessment
	if err := yaml.Unmarshal(data, &a); err != nil {
		return domain.Assessment{}, fmt.Errorf("decode assessment: %w", err)
	}
	if err := a.Validate(); err != nil {
		return domain.Assessment{}, err
	}
	return a, nil
}

// Merge returns a catalog holding both sets; entries in other win on id clashes.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{items: make(map[string]domain.Assessment, len(c.items)+len(other.items))}
	for id, a := range c.items {
		out.items[id] = a
	}
	for id, a := range other.items {
		out.items[id] = a
	}
	return out
}

// LoadAssessment implements the loader contract used by the bank caches.
func (c *Catalog) LoadAssessment(_ context.Context, assessmentID string) (domain.Assessment, error) {
	a, ok := c.items[assessmentID]
	if !ok {
		return domain.Assessment{}, fmt.Errorf("%w: %s", domain.ErrAssessmentNotFound, assessmentID)
	}
	return a, nil
}

// List returns every assessment ordered by id.
func (c *Catalog) List() []domain.Assessment {
	out := make([]domain.Assessment, 0, len(c.items))
	for _, a := range c.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListAssessments is List behind the context-aware listing contract.
func (c *Catalog) ListAssessments(context.Context) ([]domain.Assessment, error) {
	return c.List(), nil
}

// Len returns the number of assessments.
func (c *Catalog) Len() int {
	return len(c.items)
}
