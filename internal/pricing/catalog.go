package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
)

// catalogRow mirrors the on-disk shape of the pricing document.
type catalogRow struct {
	ServiceType      string  `json:"Service Type"`
	PropertySize     string  `json:"Property Size"`
	EstimatedHours   float64 `json:"Estimated Time (hrs)"`
	CleanersRequired int     `json:"Cleaners Required"`
	LabourCost       float64 `json:"Labour Cost (£)"`
	MaterialCost     float64 `json:"Material Cost (£)"`
}

// Catalog holds the pricing entries in document order.
type Catalog struct {
	entries []Entry
}

// NewCatalog builds a catalog from entries, preserving order.
func NewCatalog(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Lookup returns the entry for the service type and property size pair.
// Returns ErrNoMatch when the pair is absent from the catalog.
func (c *Catalog) Lookup(serviceType, propertySize string) (Entry, error) {
	for _, e := range c.entries {
		if e.ServiceType == serviceType && e.PropertySize == propertySize {
			return e, nil
		}
	}
	return Entry{}, ErrNoMatch
}

// Entries returns the entries in document order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// ServiceTypes returns the distinct service types in first-seen order.
func (c *Catalog) ServiceTypes() []string {
	return c.distinct(func(e Entry) string { return e.ServiceType })
}

// PropertySizes returns the distinct property sizes in first-seen order.
func (c *Catalog) PropertySizes() []string {
	return c.distinct(func(e Entry) string { return e.PropertySize })
}

func (c *Catalog) distinct(key func(Entry) string) []string {
	seen := make(map[string]struct{}, len(c.entries))
	out := []string{}
	for _, e := range c.entries {
		k := key(e)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Source loads the catalog from a JSON document. With reload disabled the
// document is read once and reused; with reload enabled every call re-reads
// so that pricing edits are picked up without a restart.
type Source struct {
	path   string
	reload bool

	mu     sync.Mutex
	cached *Catalog
}

// NewSource constructs a catalog source for the given document path.
func NewSource(path string, reload bool) *Source {
	return &Source{path: path, reload: reload}
}

// Catalog returns the current catalog, loading the document as needed.
func (s *Source) Catalog() (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && !s.reload {
		return s.cached, nil
	}

	catalog, err := loadCatalog(s.path)
	if err != nil {
		return nil, err
	}
	s.cached = catalog
	return catalog, nil
}

func loadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: read catalog: %w", err)
	}

	var rows []catalogRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("pricing: parse catalog: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ServiceType:      row.ServiceType,
			PropertySize:     row.PropertySize,
			EstimatedHours:   row.EstimatedHours,
			CleanersRequired: row.CleanersRequired,
			LabourCost:       decimal.NewFromFloat(row.LabourCost),
			MaterialCost:     decimal.NewFromFloat(row.MaterialCost),
		})
	}
	return NewCatalog(entries), nil
}
