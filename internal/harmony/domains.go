package harmony

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Mode string

const (
	ModeQuick Mode = "quick"
	ModeDeep  Mode = "deep"
)

type Element struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Quick bool   `yaml:"quick"`
}

type Domain struct {
	ID            string    `yaml:"id"`
	Label         string    `yaml:"label"`
	DefaultWeight int       `yaml:"default_weight"`
	Elements      []Element `yaml:"elements"`
}

// DomainSet is the fixed ordered list of life domains. Every element belongs
// to exactly one domain.
type DomainSet struct {
	Domains []Domain
	index   map[string]int
}

type catalog struct {
	Domains []Domain            `yaml:"domains"`
	Recipes map[string][]string `yaml:"recipes"`
}

var (
	catalogOnce   sync.Once
	loadedCatalog catalog
	catalogErr    error
)

func loadCatalog() (catalog, error) {
	catalogOnce.Do(func() {
		if err := yaml.Unmarshal(catalogYAML, &loadedCatalog); err != nil {
			catalogErr = fmt.Errorf("parse domain catalog: %w", err)
			return
		}
		if len(loadedCatalog.Domains) == 0 {
			catalogErr = fmt.Errorf("domain catalog is empty")
		}
	})
	return loadedCatalog, catalogErr
}

// DefaultDomainSet returns the domain set shipped with the app.
func DefaultDomainSet() DomainSet {
	cat, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return NewDomainSet(cat.Domains)
}

// DefaultRecipes returns the static domain -> suggested actions catalog.
func DefaultRecipes() map[string][]string {
	cat, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return cat.Recipes
}

func NewDomainSet(domains []Domain) DomainSet {
	idx := make(map[string]int, len(domains))
	for i, d := range domains {
		idx[d.ID] = i
	}
	return DomainSet{Domains: domains, index: idx}
}

func (ds DomainSet) N() int {
	return len(ds.Domains)
}

func (ds DomainSet) Index(domainID string) (int, bool) {
	i, ok := ds.index[domainID]
	return i, ok
}

func (ds DomainSet) IDs() []string {
	out := make([]string, len(ds.Domains))
	for i, d := range ds.Domains {
		out[i] = d.ID
	}
	return out
}

// DefaultWeights returns the initial value-weight allocation in percentage
// points, in domain order.
func (ds DomainSet) DefaultWeights() []int {
	out := make([]int, len(ds.Domains))
	for i, d := range ds.Domains {
		out[i] = d.DefaultWeight
	}
	return out
}

// ElementDomain maps an element ID to the domain that owns it.
func (ds DomainSet) ElementDomain(elementID string) (string, bool) {
	for _, d := range ds.Domains {
		for _, e := range d.Elements {
			if e.ID == elementID {
				return d.ID, true
			}
		}
	}
	return "", false
}

// ElementIDs returns every element ID in catalog order.
func (ds DomainSet) ElementIDs() []string {
	var out []string
	for _, d := range ds.Domains {
		for _, e := range d.Elements {
			out = append(out, e.ID)
		}
	}
	return out
}

// QuickElementIDs returns the reduced element set used by quick mode.
func (ds DomainSet) QuickElementIDs() []string {
	var out []string
	for _, d := range ds.Domains {
		for _, e := range d.Elements {
			if e.Quick {
				out = append(out, e.ID)
			}
		}
	}
	return out
}
