package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fjod/coffee-shop/internal/domain"
)

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"

	// CategoryAll selects every known category.
	CategoryAll = "all"
)

var optionLabels = map[string]string{
	"size":      "Size",
	"sweetness": "Sweetness",
	"intensity": "Intensity",
	"hot":       "Temperature",
	"ice":       "Ice",
	"milk":      "Milk",
	"pearls":    "Pearls",
	"topping":   "Topping",
	"serving":   "Serving",
	"filling":   "Filling",
	"flavor":    "Flavor",
	"quantity":  "Quantity",
}

// Provider is the read-only menu. It is built once from a loaded Menu and
// never changes afterwards.
type Provider struct {
	menu    domain.Menu
	byID    map[int64]domain.Item
	pricing Pricing
}

func NewProvider(menu domain.Menu, pricing Pricing) *Provider {
	p := &Provider{
		menu:    domain.EmptyMenu(),
		byID:    make(map[int64]domain.Item),
		pricing: pricing,
	}
	// Only known categories are served. A duplicate id resolves to the first
	// item in menu order, the same order All walks.
	for _, category := range domain.Categories {
		items := menu[category]
		p.menu[category] = slices.Clone(items)
		for _, item := range items {
			if _, dup := p.byID[item.ID]; !dup {
				p.byID[item.ID] = item
			}
		}
	}
	return p
}

func (p *Provider) FindItem(id int64) (domain.Item, bool) {
	item, ok := p.byID[id]
	return item, ok
}

func (p *Provider) PriceForSize(basePrice domain.Amount, size string) domain.Amount {
	return p.pricing.PriceForSize(basePrice, size)
}

// All returns the items of the known categories in menu order.
func (p *Provider) All() []domain.Item {
	var items []domain.Item
	for _, c := range domain.Categories {
		items = append(items, p.menu[c]...)
	}
	return items
}

func (p *Provider) ByCategory(category string) []domain.Item {
	if category == CategoryAll || category == "" {
		return p.All()
	}
	return slices.Clone(p.menu[domain.Category(category)])
}

// Search matches query case-insensitively against name and description.
func (p *Provider) Search(query string) []domain.Item {
	all := p.All()
	if query == "" {
		return all
	}
	q := strings.ToLower(query)
	var found []domain.Item
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			found = append(found, item)
		}
	}
	return found
}

// FilterByPrice keeps items whose base price is within [lo, hi].
func FilterByPrice(items []domain.Item, lo, hi domain.Amount) []domain.Item {
	var out []domain.Item
	for _, item := range items {
		if item.Price >= lo && item.Price <= hi {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a sorted copy; an unknown key keeps the original order.
func Sort(items []domain.Item, by string) []domain.Item {
	sorted := slices.Clone(items)
	switch by {
	case SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b domain.Item) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b domain.Item) int { return cmp.Compare(b.Price, a.Price) })
	case SortName:
		slices.SortStableFunc(sorted, func(a, b domain.Item) int { return strings.Compare(a.Name, b.Name) })
	}
	return sorted
}

// OptionLabel returns the display label for an option key.
func OptionLabel(key string) string {
	if label, ok := optionLabels[key]; ok {
		return label
	}
	return key
}
