// Catalog lookup tools: the read-only operations the model may request.
//
// Information Hiding:
// - Result formatting kept inside each tool
// - Catalog access via the Backend interface only

package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/serenityspa/concierge/catalog"
)

// listServicesTool lists services, optionally filtered by category.
type listServicesTool struct {
	backend catalog.Backend
}

// NewListServicesTool creates the list_services tool.
func NewListServicesTool(backend catalog.Backend) Tool {
	return &listServicesTool{backend: backend}
}

func (t *listServicesTool) Spec() Spec {
	return Spec{
		Name:        "list_services",
		Description: "List spa services with prices and duration, optionally filtered by category (facial, massage, nails, hair)",
		Parameters: []Parameter{
			{Name: "category", Type: TypeString, Description: "Category to filter by", Required: false},
		},
	}
}

func (t *listServicesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	filter := catalog.Filter{}
	if category, ok := args["category"].(string); ok {
		filter.Category = category
	}

	services, err := t.backend.Lookup(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}

	if len(services) == 0 {
		if filter.Category != "" {
			return fmt.Sprintf("We don't have any %s services at the moment.", filter.Category), nil
		}
		return "Sorry, I couldn't load our services right now.", nil
	}

	return formatServiceList(services), nil
}

// allServicesTool returns the complete catalog.
type allServicesTool struct {
	backend catalog.Backend
}

// NewAllServicesTool creates the get_all_services tool.
func NewAllServicesTool(backend catalog.Backend) Tool {
	return &allServicesTool{backend: backend}
}

func (t *allServicesTool) Spec() Spec {
	return Spec{
		Name:        "get_all_services",
		Description: "Get the complete list of spa services with prices and duration",
		Parameters:  []Parameter{},
	}
}

func (t *allServicesTool) Execute(ctx context.Context, _ map[string]interface{}) (string, error) {
	services, err := t.backend.Lookup(ctx, catalog.Filter{})
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}

	if len(services) == 0 {
		return "Sorry, I couldn't load our services right now.", nil
	}

	var b strings.Builder
	b.WriteString("SPA SERVICES\n\n")
	for _, svc := range services {
		fmt.Fprintf(&b, "%s - $%s\n  Duration: %s\n\n", svc.Name, formatPrice(svc.Price), svc.Duration)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// serviceInfoTool looks up one service by name, falling back to partial
// matches.
type serviceInfoTool struct {
	backend catalog.Backend
}

// NewServiceInfoTool creates the get_service_info tool.
func NewServiceInfoTool(backend catalog.Backend) Tool {
	return &serviceInfoTool{backend: backend}
}

func (t *serviceInfoTool) Spec() Spec {
	return Spec{
		Name:        "get_service_info",
		Description: "Get details about a specific service",
		Parameters: []Parameter{
			{Name: "service_name", Type: TypeString, Description: "Name of the service", Required: true},
		},
	}
}

func (t *serviceInfoTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	name, _ := args["service_name"].(string)

	services, err := t.backend.Lookup(ctx, catalog.Filter{})
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}

	for _, svc := range services {
		if strings.EqualFold(svc.Name, name) {
			return fmt.Sprintf("%s\nPrice: $%s\nDuration: %s", svc.Name, formatPrice(svc.Price), svc.Duration), nil
		}
	}

	var matches []catalog.Service
	for _, svc := range services {
		if strings.Contains(strings.ToLower(svc.Name), strings.ToLower(name)) {
			matches = append(matches, svc)
		}
	}
	if len(matches) > 0 {
		var b strings.Builder
		b.WriteString("Did you mean:\n")
		for _, svc := range matches {
			fmt.Fprintf(&b, "- %s ($%s)\n", svc.Name, formatPrice(svc.Price))
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}

	return fmt.Sprintf("Sorry, I couldn't find '%s' in our services.", name), nil
}

// priceSearchTool finds services within a price range.
type priceSearchTool struct {
	backend catalog.Backend
}

// NewPriceSearchTool creates the search_by_price tool.
func NewPriceSearchTool(backend catalog.Backend) Tool {
	return &priceSearchTool{backend: backend}
}

func (t *priceSearchTool) Spec() Spec {
	return Spec{
		Name:        "search_by_price",
		Description: "Find services within a price range",
		Parameters: []Parameter{
			{Name: "max_price", Type: TypeNumber, Description: "Maximum price in dollars", Required: true},
			{Name: "min_price", Type: TypeNumber, Description: "Minimum price in dollars", Required: false},
		},
	}
}

func (t *priceSearchTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	maxPrice, _ := args["max_price"].(float64)
	filter := catalog.Filter{MaxPrice: &maxPrice}
	if minPrice, ok := args["min_price"].(float64); ok {
		filter.MinPrice = &minPrice
	}

	services, err := t.backend.Lookup(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}

	if len(services) == 0 {
		return fmt.Sprintf("Sorry, we don't have services under $%s.", formatPrice(maxPrice)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Services under $%s:\n\n", formatPrice(maxPrice))
	for _, svc := range services {
		fmt.Fprintf(&b, "- %s - $%s (%s)\n", svc.Name, formatPrice(svc.Price), svc.Duration)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// categoriesTool groups services by category.
type categoriesTool struct {
	backend catalog.Backend
}

// NewCategoriesTool creates the get_service_categories tool.
func NewCategoriesTool(backend catalog.Backend) Tool {
	return &categoriesTool{backend: backend}
}

func (t *categoriesTool) Spec() Spec {
	return Spec{
		Name:        "get_service_categories",
		Description: "Get services organized by category",
		Parameters:  []Parameter{},
	}
}

func (t *categoriesTool) Execute(ctx context.Context, _ map[string]interface{}) (string, error) {
	services, err := t.backend.Lookup(ctx, catalog.Filter{})
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}

	if len(services) == 0 {
		return "Sorry, I couldn't load our services right now.", nil
	}

	// Preserve first-seen category order.
	var order []string
	grouped := map[string][]catalog.Service{}
	for _, svc := range services {
		if _, seen := grouped[svc.Category]; !seen {
			order = append(order, svc.Category)
		}
		grouped[svc.Category] = append(grouped[svc.Category], svc)
	}

	var b strings.Builder
	b.WriteString("SERVICES BY CATEGORY\n")
	for _, category := range order {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(category))
		for _, svc := range grouped[category] {
			fmt.Fprintf(&b, "  - %s - $%s\n", svc.Name, formatPrice(svc.Price))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// formatServiceList renders services as a bulleted list.
func formatServiceList(services []catalog.Service) string {
	var b strings.Builder
	for _, svc := range services {
		fmt.Fprintf(&b, "- %s - $%s (%s)\n", svc.Name, formatPrice(svc.Price), svc.Duration)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatPrice renders a price without trailing zeros.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
