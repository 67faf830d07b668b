package tools

import (
	"context"
	"testing"

	"github.com/serenityspa/concierge/catalog"
)

type stubTool struct {
	name string
}

func (t *stubTool) Spec() Spec {
	return Spec{Name: t.name, Description: "stub"}
}

func (t *stubTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "ok", nil
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(&stubTool{name: "dup"}, &stubTool{name: "dup"})
	if err == nil {
		t.Error("expected error for duplicate tool name")
	}
}

func TestRegistryGetAndHas(t *testing.T) {
	registry, err := NewRegistry(&stubTool{name: "a"}, &stubTool{name: "b"})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if !registry.Has("a") {
		t.Error("expected registry to have 'a'")
	}
	if registry.Has("missing") {
		t.Error("did not expect registry to have 'missing'")
	}

	tool, ok := registry.Get("b")
	if !ok {
		t.Fatal("expected to get 'b'")
	}
	if tool.Spec().Name != "b" {
		t.Errorf("got wrong tool: %s", tool.Spec().Name)
	}
}

func TestRegistryListOrderIsStable(t *testing.T) {
	registry, err := NewRegistry(&stubTool{name: "z"}, &stubTool{name: "a"}, &stubTool{name: "m"})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	want := []string{"z", "a", "m"}
	for i := 0; i < 3; i++ {
		names := registry.Names()
		if len(names) != len(want) {
			t.Fatalf("expected %d names, got %d", len(want), len(names))
		}
		for j, name := range names {
			if name != want[j] {
				t.Errorf("call %d: names[%d] = %q, want %q", i, j, name, want[j])
			}
		}
	}
}

func TestCatalogRegistryTools(t *testing.T) {
	registry, err := NewCatalogRegistry(catalog.Default())
	if err != nil {
		t.Fatalf("NewCatalogRegistry failed: %v", err)
	}

	want := []string{
		"list_services",
		"get_all_services",
		"get_service_info",
		"search_by_price",
		"get_service_categories",
	}
	names := registry.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(names))
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestSpecInputSchema(t *testing.T) {
	spec := Spec{
		Name: "search_by_price",
		Parameters: []Parameter{
			{Name: "max_price", Type: TypeNumber, Description: "Maximum price", Required: true},
			{Name: "min_price", Type: TypeNumber, Description: "Minimum price", Required: false},
		},
	}

	schema := spec.InputSchema()
	if schema["type"] != "object" {
		t.Errorf("expected object schema, got %v", schema["type"])
	}

	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties missing")
	}
	if len(properties) != 2 {
		t.Errorf("expected 2 properties, got %d", len(properties))
	}

	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatal("required should be []string")
	}
	if len(required) != 1 || required[0] != "max_price" {
		t.Errorf("required = %v, want [max_price]", required)
	}
}
