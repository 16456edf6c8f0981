package symptom

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Version           int                `yaml:"version"`
	Symptoms          []Symptom          `yaml:"symptoms"`
	EmergencyContacts []EmergencyContact `yaml:"emergency_contacts"`
}

// Catalog is the read-only symptom reference list. It is safe for
// concurrent use.
type Catalog struct {
	symptoms []Symptom
	byID     map[string]int
	contacts []EmergencyContact
}

// NewCatalog validates ids, categories and severities. Whether an
// emergency-category symptom also carries high severity is left to the
// catalog author.
func NewCatalog(symptoms []Symptom, contacts []EmergencyContact) (*Catalog, error) {
	c := &Catalog{
		symptoms: make([]Symptom, len(symptoms)),
		byID:     make(map[string]int, len(symptoms)),
		contacts: append([]EmergencyContact(nil), contacts...),
	}
	copy(c.symptoms, symptoms)

	for i, s := range c.symptoms {
		if s.ID == "" {
			return nil, fmt.Errorf("symptom at index %d has no id", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate symptom id %q", s.ID)
		}
		if !s.Category.Valid() {
			return nil, fmt.Errorf("symptom %q: unknown category %q", s.ID, s.Category)
		}
		if !s.Severity.Valid() {
			return nil, fmt.Errorf("symptom %q: unknown severity %q", s.ID, s.Severity)
		}
		c.byID[s.ID] = i
	}
	return c, nil
}

func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode symptom catalog: %w", err)
	}
	return NewCatalog(f.Symptoms, f.EmergencyContacts)
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalogYAML))
}

func (c *Catalog) Symptoms() []Symptom {
	return append([]Symptom(nil), c.symptoms...)
}

func (c *Catalog) Get(id string) (Symptom, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Symptom{}, false
	}
	return c.symptoms[i], true
}

// Resolve maps ids to catalog entries in catalog order. Unknown and
// repeated ids are dropped.
func (c *Catalog) Resolve(ids []string) []Symptom {
	selected := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			selected[i] = struct{}{}
		}
	}

	resolved := make([]Symptom, 0, len(selected))
	for i, s := range c.symptoms {
		if _, ok := selected[i]; ok {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

// BySeverity groups the catalog by severity, keeping catalog order inside
// each group.
func (c *Catalog) BySeverity() map[Severity][]Symptom {
	groups := make(map[Severity][]Symptom, 3)
	for _, s := range c.symptoms {
		groups[s.Severity] = append(groups[s.Severity], s)
	}
	return groups
}

func (c *Catalog) EmergencyContacts() []EmergencyContact {
	return append([]EmergencyContact(nil), c.contacts...)
}
