// Package catalog provides read-only access to the spa service catalog.
//
// Information Hiding:
// - Catalog storage (JSON file, SQLite) hidden behind the Backend interface
// - Filter evaluation centralized so all backends match the same way
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Service is one bookable spa service.
type Service struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
}

// Filter narrows a catalog lookup. All fields are optional; the zero value
// matches everything.
type Filter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether the service satisfies the filter.
func (f Filter) Matches(s Service) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, s.Category) {
		return false
	}
	if f.MinPrice != nil && s.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Backend is the read-only lookup contract used by the tools.
// Implementations must return services in a stable order.
type Backend interface {
	Lookup(ctx context.Context, filter Filter) ([]Service, error)
}

// Static is an in-memory catalog backend.
type Static struct {
	services []Service
}

// NewStatic creates a static catalog from the given services.
// Lookup order follows the slice order.
func NewStatic(services []Service) *Static {
	copied := make([]Service, len(services))
	copy(copied, services)
	return &Static{services: copied}
}

// catalogFile is the on-disk shape: {"services": [...]}.
// Matches the services.json layout the tool backend reads.
type catalogFile struct {
	Services []Service `json:"services"`
}

// LoadFile loads a static catalog from a services.json file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	return NewStatic(file.Services), nil
}

// Lookup returns the services matching the filter in catalog order.
func (s *Static) Lookup(_ context.Context, filter Filter) ([]Service, error) {
	matched := []Service{}
	for _, svc := range s.services {
		if filter.Matches(svc) {
			matched = append(matched, svc)
		}
	}
	return matched, nil
}

// Default returns the built-in catalog used when no services file is
// configured.
func Default() *Static {
	return NewStatic([]Service{
		{Name: "Classic Facial", Category: "facial", Price: 75, Duration: "50 minutes"},
		{Name: "Deluxe Facial", Category: "facial", Price: 120, Duration: "80 minutes"},
		{Name: "Swedish Massage", Category: "massage", Price: 95, Duration: "60 minutes"},
		{Name: "Deep Tissue Massage", Category: "massage", Price: 110, Duration: "60 minutes"},
		{Name: "Manicure", Category: "nails", Price: 35, Duration: "30 minutes"},
		{Name: "Pedicure", Category: "nails", Price: 45, Duration: "45 minutes"},
		{Name: "Haircut", Category: "hair", Price: 55, Duration: "45 minutes"},
		{Name: "Blowout", Category: "hair", Price: 40, Duration: "30 minutes"},
	})
}

// Verify Static implements Backend
var _ Backend = (*Static)(nil)
