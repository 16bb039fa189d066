// card/model.go
package card

import (
	"time"

	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/internal/models"
)

// PokemonPurchase is one Pokémon owned by a user. Rows are immutable
// after creation. Direct purchases are unique per (user_id, pokemon_name)
// at the application level; mystery-box purchases may duplicate, so no
// database unique index exists on the pair.
type PokemonPurchase struct {
	gorm.Model
	PokemonID    int                `json:"pokemon_id" gorm:"not null"`
	PokemonName  string             `json:"pokemon_name" gorm:"not null;index"`
	PokemonImage string             `json:"pokemon_image"`
	PokemonTypes models.StringSlice `json:"pokemon_types" gorm:"type:jsonb;not null"`
	UserID       uint               `json:"user_id" gorm:"not null;index"`
	Price        float64            `json:"price" gorm:"type:decimal(10,2);default:0"`
}

// PurchaseResponse is the wire shape of a purchase.
type PurchaseResponse struct {
	ID           uint      `json:"id"`
	PokemonID    int       `json:"pokemon_id"`
	PokemonName  string    `json:"pokemon_name"`
	PokemonImage string    `json:"pokemon_image"`
	PokemonTypes []string  `json:"pokemon_types"`
	Price        float64   `json:"price"`
	PurchasedAt  time.Time `json:"purchased_at"`
}

// ToResponse maps a persisted purchase to its wire shape.
func (p *PokemonPurchase) ToResponse() PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID,
		PokemonID:    p.PokemonID,
		PokemonName:  p.PokemonName,
		PokemonImage: p.PokemonImage,
		PokemonTypes: p.PokemonTypes,
		Price:        p.Price,
		PurchasedAt:  p.CreatedAt,
	}
}
