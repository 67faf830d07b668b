// Tool registry.
//
// Information Hiding:
// - Tool storage and lookup implementation hidden
// - Listing order fixed at construction time

package tools

import (
	"fmt"
	"strings"

	"github.com/serenityspa/concierge/catalog"
)

// Registry holds the fixed set of available tools. It is immutable after
// construction: registration is configuration, not a runtime operation.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

// NewRegistry creates a registry from the given tools.
// Returns an error on duplicate tool names. List order follows the
// argument order and is stable across calls.
func NewRegistry(toolList ...Tool) (*Registry, error) {
	r := &Registry{
		order:  make([]Tool, 0, len(toolList)),
		byName: make(map[string]Tool, len(toolList)),
	}
	for _, tool := range toolList {
		name := tool.Spec().Name
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("tool '%s' already registered", name)
		}
		r.byName[name] = tool
		r.order = append(r.order, tool)
	}
	return r, nil
}

// NewCatalogRegistry creates a registry with the full set of catalog tools
// backed by the given catalog.
func NewCatalogRegistry(backend catalog.Backend) (*Registry, error) {
	return NewRegistry(
		NewListServicesTool(backend),
		NewAllServicesTool(backend),
		NewServiceInfoTool(backend),
		NewPriceSearchTool(backend),
		NewCategoriesTool(backend),
	)
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, exists := r.byName[name]
	return tool, exists
}

// Has checks if a tool exists in the registry.
func (r *Registry) Has(name string) bool {
	_, exists := r.byName[name]
	return exists
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, tool := range r.order {
		names = append(names, tool.Spec().Name)
	}
	return names
}

// List returns the specs of all registered tools in registration order.
func (r *Registry) List() []Spec {
	specs := make([]Spec, 0, len(r.order))
	for _, tool := range r.order {
		specs = append(specs, tool.Spec())
	}
	return specs
}

// Description returns a formatted description of all tools.
func (r *Registry) Description() string {
	var descriptions []string
	for _, tool := range r.order {
		spec := tool.Spec()
		var params []string
		for _, p := range spec.Parameters {
			required := "optional"
			if p.Required {
				required = "required"
			}
			params = append(params, fmt.Sprintf("  - %s (%s): %s [%s]",
				p.Name, p.Type, p.Description, required))
		}

		paramStr := strings.Join(params, "\n")
		if paramStr == "" {
			paramStr = "  (none)"
		}
		descriptions = append(descriptions, fmt.Sprintf(
			"Tool: %s\nDescription: %s\nParameters:\n%s",
			spec.Name, spec.Description, paramStr))
	}

	return strings.Join(descriptions, "\n\n")
}
