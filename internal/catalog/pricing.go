package catalog

import (
	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSize is used when a selection carries no size.
const DefaultSize = "M"

// Pricing holds the per-size price factors. Unknown sizes use a factor of 1.
type Pricing struct {
	multipliers map[string]decimal.Decimal
}

func NewPricing(multipliers map[string]float64) Pricing {
	p := Pricing{multipliers: make(map[string]decimal.Decimal, len(multipliers))}
	for size, m := range multipliers {
		p.multipliers[size] = decimal.NewFromFloat(m)
	}
	return p
}

// DefaultPricing is S:1.0, M:1.2, L:1.4.
func DefaultPricing() Pricing {
	return NewPricing(map[string]float64{"S": 1.0, "M": 1.2, "L": 1.4})
}

// PriceForSize scales basePrice by the size factor and rounds half up to a
// whole amount.
func (p Pricing) PriceForSize(basePrice domain.Amount, size string) domain.Amount {
	m, ok := p.multipliers[size]
	if !ok {
		m = decimal.NewFromInt(1)
	}
	price := decimal.NewFromInt(int64(basePrice)).Mul(m)
	return domain.Amount(price.Round(0).IntPart())
}
