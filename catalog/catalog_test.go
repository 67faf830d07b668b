package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestFilterMatches(t *testing.T) {
	svc := Service{Name: "Classic Facial", Category: "facial", Price: 75, Duration: "50 minutes"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"category match is case-insensitive", Filter{Category: "Facial"}, true},
		{"category mismatch", Filter{Category: "massage"}, false},
		{"within price range", Filter{MinPrice: ptr(50), MaxPrice: ptr(100)}, true},
		{"below min price", Filter{MinPrice: ptr(80)}, false},
		{"above max price", Filter{MaxPrice: ptr(50)}, false},
		{"boundary is inclusive", Filter{MinPrice: ptr(75), MaxPrice: ptr(75)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(svc); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStaticLookupPreservesOrder(t *testing.T) {
	backend := Default()

	services, err := backend.Lookup(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(services) != 8 {
		t.Fatalf("expected 8 services, got %d", len(services))
	}
	if services[0].Name != "Classic Facial" {
		t.Errorf("expected 'Classic Facial' first, got %q", services[0].Name)
	}
	if services[7].Name != "Blowout" {
		t.Errorf("expected 'Blowout' last, got %q", services[7].Name)
	}
}

func TestStaticLookupByCategory(t *testing.T) {
	backend := Default()

	services, err := backend.Lookup(context.Background(), Filter{Category: "FACIAL"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 facials, got %d", len(services))
	}
	for _, svc := range services {
		if svc.Category != "facial" {
			t.Errorf("unexpected category %q", svc.Category)
		}
	}
}

func TestStaticLookupByPrice(t *testing.T) {
	backend := Default()

	services, err := backend.Lookup(context.Background(), Filter{MaxPrice: ptr(50)})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	// Manicure 35, Pedicure 45, Blowout 40
	if len(services) != 3 {
		t.Fatalf("expected 3 services under $50, got %d", len(services))
	}
	for _, svc := range services {
		if svc.Price > 50 {
			t.Errorf("%s priced at %v exceeds filter", svc.Name, svc.Price)
		}
	}
}

func TestStaticLookupNoMatch(t *testing.T) {
	backend := Default()

	services, err := backend.Lookup(context.Background(), Filter{Category: "tanning"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if services == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(services) != 0 {
		t.Errorf("expected no matches, got %d", len(services))
	}
}

func TestNewStaticCopiesInput(t *testing.T) {
	input := []Service{{Name: "Original", Category: "facial", Price: 10}}
	backend := NewStatic(input)

	input[0].Name = "Modified"

	services, err := backend.Lookup(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if services[0].Name != "Original" {
		t.Errorf("backend should copy input, got %q", services[0].Name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.json")
	data := `{
		"services": [
			{"name": "Hot Stone Massage", "category": "massage", "price": 130, "duration": "75 minutes"},
			{"name": "Express Facial", "category": "facial", "price": 45, "duration": "25 minutes"}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	backend, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	services, err := backend.Lookup(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services[0].Name != "Hot Stone Massage" || services[0].Price != 130 {
		t.Errorf("first service wrong: %+v", services[0])
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
