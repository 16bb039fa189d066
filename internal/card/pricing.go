package card

import (
	"math"

	"github.com/dmartinezh/poketeams/internal/catalog"
)

const (
	basePrice           = 50
	minimumPrice        = 10
	weightHeightDivisor = 10
	typeBonusMultiplier = 25
)

// CalculatePrice derives a purchase price from a Pokémon's attributes.
// Pure and deterministic; never returns less than the minimum price.
func CalculatePrice(p *catalog.Pokemon) float64 {
	weightFactor := math.Floor(p.Weight / weightHeightDivisor)
	heightFactor := math.Floor(p.Height / weightHeightDivisor)
	typesBonus := float64(len(p.Types) * typeBonusMultiplier)

	finalPrice := basePrice + weightFactor + heightFactor + typesBonus

	return math.Max(finalPrice, minimumPrice)
}
