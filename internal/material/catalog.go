package material

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

//go:embed materials.json
var defaultDocument []byte

// ErrUnknownMaterial is returned when a lookup or reference names a material
// the catalog does not contain.
var ErrUnknownMaterial = errors.New("unknown material")

type solidDoc struct {
	Solid
	MeltsInto string `json:"meltsInto"`
}

type document struct {
	Gases   []Gas      `json:"gases"`
	Carrier Base       `json:"carrier"`
	Liquids []Liquid   `json:"liquids"`
	Solids  []solidDoc `json:"solids"`
}

// Catalog is the immutable set of materials a simulation is built from.
type Catalog struct {
	gases   [NumSpecies]Gas
	carrier *Base
	liquids map[string]*Liquid
	solids  map[string]*Solid
}

// Parse builds a catalog from a JSON document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse material catalog: %w", err)
	}
	if len(doc.Gases) != NumSpecies {
		return nil, fmt.Errorf("material catalog lists %d gases, want %d", len(doc.Gases), NumSpecies)
	}

	c := &Catalog{
		liquids: make(map[string]*Liquid, len(doc.Liquids)),
		solids:  make(map[string]*Solid, len(doc.Solids)),
	}
	copy(c.gases[:], doc.Gases)
	carrier := doc.Carrier
	c.carrier = &carrier

	for i := range doc.Liquids {
		l := doc.Liquids[i]
		c.liquids[l.Name] = &l
	}
	for _, sd := range doc.Solids {
		s := sd.Solid
		if sd.MeltsInto != "" {
			l, ok := c.liquids[sd.MeltsInto]
			if !ok {
				return nil, fmt.Errorf("solid %q melts into %q: %w", s.Name, sd.MeltsInto, ErrUnknownMaterial)
			}
			s.MeltsInto = l
		}
		c.solids[s.Name] = &s
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the standard catalog. It panics if the embedded document is
// malformed, since the simulation cannot run without it.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultDocument)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Gas returns the properties of a species.
func (c *Catalog) Gas(s Species) Gas { return c.gases[s] }

// Gases returns the full species table.
func (c *Catalog) Gases() [NumSpecies]Gas { return c.gases }

// Carrier returns the material fluid tiles use for gas heat capacity and
// conductivity.
func (c *Catalog) Carrier() *Base { return c.carrier }

// Solid looks up a solid by name.
func (c *Catalog) Solid(name string) (*Solid, error) {
	s, ok := c.solids[name]
	if !ok {
		return nil, fmt.Errorf("solid %q: %w", name, ErrUnknownMaterial)
	}
	return s, nil
}

// Liquid looks up a liquid by name.
func (c *Catalog) Liquid(name string) (*Liquid, error) {
	l, ok := c.liquids[name]
	if !ok {
		return nil, fmt.Errorf("liquid %q: %w", name, ErrUnknownMaterial)
	}
	return l, nil
}

// MustSolid is Solid for names known to be in the catalog.
func (c *Catalog) MustSolid(name string) *Solid {
	s, err := c.Solid(name)
	if err != nil {
		panic(err)
	}
	return s
}

// MustLiquid is Liquid for names known to be in the catalog.
func (c *Catalog) MustLiquid(name string) *Liquid {
	l, err := c.Liquid(name)
	if err != nil {
		panic(err)
	}
	return l
}

// SolidNames lists the solids in name order.
func (c *Catalog) SolidNames() []string {
	names := make([]string, 0, len(c.solids))
	for name := range c.solids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MolarMasses returns the molar mass of each species in kg/mol.
func (c *Catalog) MolarMasses() [NumSpecies]float64 {
	var m [NumSpecies]float64
	for i, g := range c.gases {
		m[i] = g.MolarMass
	}
	return m
}
