// Package catalog loads the static table of selectable globe entities.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-globe/pkg/angular"
)

var (
	// ErrEmptyID is returned for an entity without an id.
	ErrEmptyID = errors.New("entity id is empty")
	// ErrDuplicateID is returned when two entities share an id.
	ErrDuplicateID = errors.New("duplicate entity id")
	// ErrInvalidEntity is returned for out-of-range authored values.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Region is the patch of the globe surface an entity occupies, in degrees.
type Region struct {
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Radius float64 `yaml:"radius"`
}

// Entity is a selectable region with its authored camera target.
type Entity struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name,omitempty"`
	TargetLat float64 `yaml:"target_lat"` // rotation about the tilt axis, radians
	TargetLon float64 `yaml:"target_lon"` // rotation about the vertical axis, radians
	Zoom      float64 `yaml:"zoom"`
	Completed bool    `yaml:"completed,omitempty"`
	Region    *Region `yaml:"region,omitempty"`
}

// Target returns the entity's authored orientation.
func (e Entity) Target() angular.Angles {
	return angular.Angles{X: e.TargetLat, Y: e.TargetLon}
}

// DisplayName is the human-readable name: Name if set, otherwise the id
// with underscores replaced by spaces.
func (e Entity) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return strings.ReplaceAll(e.ID, "_", " ")
}

func (e Entity) validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	for _, v := range []float64{e.TargetLat, e.TargetLon, e.Zoom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite value", ErrInvalidEntity, e.ID)
		}
	}
	if e.Zoom <= 0 {
		return fmt.Errorf("%w: %s zoom must be positive, got %v", ErrInvalidEntity, e.ID, e.Zoom)
	}
	if r := e.Region; r != nil {
		if r.Lat < -90 || r.Lat > 90 {
			return fmt.Errorf("%w: %s region latitude %v out of range", ErrInvalidEntity, e.ID, r.Lat)
		}
		if r.Radius <= 0 || r.Radius > 180 {
			return fmt.Errorf("%w: %s region radius %v out of range", ErrInvalidEntity, e.ID, r.Radius)
		}
	}
	return nil
}

// Catalog is the immutable entity table.
type Catalog struct {
	entities []Entity
	byID     map[string]int
}

// New builds a catalog, validating every entity and rejecting duplicate ids.
func New(entities []Entity) (*Catalog, error) {
	c := &Catalog{
		entities: make([]Entity, 0, len(entities)),
		byID:     make(map[string]int, len(entities)),
	}
	for i, e := range entities {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("entity #%d: %w", i, err)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		c.byID[e.ID] = len(c.entities)
		c.entities = append(c.entities, e)
	}
	return c, nil
}

// file is the on-disk layout of the entity table.
type file struct {
	Entities []Entity `yaml:"entities"`
}

// Parse decodes a YAML entity table.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing entity table: %w", err)
	}
	return New(f.Entities)
}

// Load reads a YAML entity table from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entity table: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(file{Entities: c.entities})
}

// Len returns the number of entities.
func (c *Catalog) Len() int { return len(c.entities) }

// Get looks up an entity by id.
func (c *Catalog) Get(id string) (Entity, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entity{}, false
	}
	return c.entities[i], true
}

// Has reports whether id is a known entity.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns the entities in table order. The slice is a copy.
func (c *Catalog) All() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Next returns the entity after id in table order, wrapping around. An
// unknown or empty id yields the first entity.
func (c *Catalog) Next(id string) (Entity, bool) {
	if len(c.entities) == 0 {
		return Entity{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return c.entities[0], true
	}
	return c.entities[(i+1)%len(c.entities)], true
}
