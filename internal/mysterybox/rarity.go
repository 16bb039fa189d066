package mysterybox

import (
	"log"
	"math"
)

// Rarity is one of the five fixed tiers used to bucket the catalog for
// weighted random selection.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type rarityBand struct {
	Level       Rarity
	Probability float64
	MinWeight   float64
	MaxWeight   float64
}

// rarityTable fixes the draw probability and classification weight range
// of each tier. Order matters: the allocator walks it accumulating
// probabilities, and the probabilities sum to 1.0.
var rarityTable = []rarityBand{
	{RarityCommon, 0.50, 0, 100},
	{RarityUncommon, 0.25, 101, 300},
	{RarityRare, 0.15, 301, 600},
	{RarityEpic, 0.08, 601, 1000},
	{RarityLegendary, 0.02, 1001, 10000},
}

// Rarities returns the tiers in their fixed draw order.
func Rarities() []Rarity {
	levels := make([]Rarity, 0, len(rarityTable))
	for _, band := range rarityTable {
		levels = append(levels, band.Level)
	}
	return levels
}

// ClassifyWeight maps a Pokémon weight to its rarity tier. Invalid
// weights (non-positive or non-finite) and weights outside every defined
// range classify as common, so classification is total.
func ClassifyWeight(weight float64) Rarity {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		log.Printf("Mystery Box - Invalid pokemon weight %v, defaulting to common", weight)
		return RarityCommon
	}

	for _, band := range rarityTable {
		if weight >= band.MinWeight && weight <= band.MaxWeight {
			return band.Level
		}
	}

	log.Printf("Mystery Box - Pokemon weight %v outside defined ranges, defaulting to common", weight)
	return RarityCommon
}
