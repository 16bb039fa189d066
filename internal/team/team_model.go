// team/model.go
package team

import (
	"time"

	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/internal/card"
)

// MaxTeamSize is the hard cap on members per team.
const MaxTeamSize = 6

// Team is a user's themed roster of purchased Pokémon. A user may hold
// at most one team per type, enforced by the composite unique index.
type Team struct {
	gorm.Model
	Name     string                 `json:"name" gorm:"not null"`
	TeamType string                 `json:"team_type" gorm:"not null;uniqueIndex:idx_teams_user_type"`
	UserID   uint                   `json:"user_id" gorm:"not null;uniqueIndex:idx_teams_user_type"`
	Pokemons []card.PokemonPurchase `json:"pokemons" gorm:"many2many:team_pokemons;"`
}

// TeamResponse is the wire shape of a team.
type TeamResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	TeamType  string    `json:"teamType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddPokemonsResponse is the data payload of an add-members operation:
// the updated team and the members added by this request.
type AddPokemonsResponse struct {
	Team          TeamResponse            `json:"team"`
	AddedPokemons []card.PurchaseResponse `json:"addedPokemons"`
	TeamSize      int                     `json:"teamSize"`
}

// ToResponse maps a persisted team to its wire shape.
func (t *Team) ToResponse() TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		TeamType:  t.TeamType,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
