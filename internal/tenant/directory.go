// Package tenant resolves tenant ids to configurations and tracks the active
// tenant of a portal session.
package tenant

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateTenant = errors.New("duplicate tenant id")
	ErrMissingDefault  = errors.New("default tenant configuration is required")
)

// Directory is the fixed table of tenant configurations. It is immutable
// after construction and shared by every session.
type Directory struct {
	configs map[string]*models.TenantConfiguration
}

// NewDirectory validates configs and indexes them by tenant id.
func NewDirectory(configs ...*models.TenantConfiguration) (*Directory, error) {
	d := &Directory{configs: make(map[string]*models.TenantConfiguration, len(configs))}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, exists := d.configs[c.TenantID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTenant, c.TenantID)
		}
		d.configs[c.TenantID] = c
	}
	if _, ok := d.configs[DefaultTenantID]; !ok {
		return nil, ErrMissingDefault
	}
	return d, nil
}

// BuiltinDirectory returns the directory of shipped tenants.
func BuiltinDirectory() *Directory {
	d, err := NewDirectory(Builtins()...)
	if err != nil {
		// built-ins are static data; a failure here is a programming error
		panic(err)
	}
	return d
}

// Lookup returns the configuration for id, or the default configuration when
// id is unknown. found reports whether id itself was present.
func (d *Directory) Lookup(id string) (cfg *models.TenantConfiguration, found bool) {
	if c, ok := d.configs[id]; ok {
		return c, true
	}
	return d.configs[DefaultTenantID], false
}

// IDs returns every tenant id in sorted order.
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.configs))
	for id := range d.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of tenants.
func (d *Directory) Len() int {
	return len(d.configs)
}

type overlayFile struct {
	Tenants []*models.TenantConfiguration `yaml:"tenants"`
}

// LoadFile returns a directory of the built-in tenants overlaid with the
// tenants listed in a YAML file. A file entry replaces the built-in with the
// same id; ids must be unique within the file.
func LoadFile(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tenants file: %w", err)
	}
	var f overlayFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tenants file: %w", err)
	}

	seen := make(map[string]bool, len(f.Tenants))
	merged := make(map[string]*models.TenantConfiguration)
	var order []string
	for _, c := range Builtins() {
		merged[c.TenantID] = c
		order = append(order, c.TenantID)
	}
	for _, c := range f.Tenants {
		if c == nil {
			continue
		}
		if seen[c.TenantID] {
			return nil, fmt.Errorf("tenants file: %w: %q", ErrDuplicateTenant, c.TenantID)
		}
		seen[c.TenantID] = true
		if _, builtin := merged[c.TenantID]; !builtin {
			order = append(order, c.TenantID)
		}
		merged[c.TenantID] = c
	}

	configs := make([]*models.TenantConfiguration, 0, len(order))
	for _, id := range order {
		configs = append(configs, merged[id])
	}
	d, err := NewDirectory(configs...)
	if err != nil {
		return nil, fmt.Errorf("tenants file: %w", err)
	}
	return d, nil
}
