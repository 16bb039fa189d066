package team

import (
	"fmt"
	"log"

	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/pkg/apperr"
)

// resolveAdditions matches the requested purchase ids against the rows
// actually found. Every id must resolve.
func resolveAdditions(requested []uint, found []card.PokemonPurchase) ([]card.PokemonPurchase, error) {
	byID := make(map[uint]card.PokemonPurchase, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	resolved := make([]card.PokemonPurchase, 0, len(requested))
	var missing []uint
	for _, id := range requested {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		resolved = append(resolved, p)
	}

	if len(missing) > 0 {
		log.Printf("Teams - Pokemon purchases not found: %v", missing)
		return nil, apperr.New(apperr.NotFound, "NOT_FOUND", "Some specified Pokemon purchases were not found")
	}
	return resolved, nil
}

// validateCapacity checks the requested addition count against the
// team's remaining room. Runs on the raw request, before any purchase
// lookup, so an over-sized request is reported as such even when it
// also references unknown ids.
func validateCapacity(team *Team, adding int) error {
	currentSize := len(team.Pokemons)
	if currentSize+adding > MaxTeamSize {
		log.Printf("Teams - Team %d capacity exceeded. Current: %d, Adding: %d, Max: %d",
			team.ID, currentSize, adding, MaxTeamSize)
		return apperr.New(apperr.Validation, "TEAM_CAPACITY_EXCEEDED",
			fmt.Sprintf("Cannot add %d Pokemon. Team would exceed maximum size of %d. Current: %d",
				adding, MaxTeamSize, currentSize))
	}
	return nil
}

// validateAdditions runs the ownership, compatibility and duplicate
// checks against a single consistent read of the team. It either passes
// entirely or fails without any mutation.
func validateAdditions(team *Team, additions []card.PokemonPurchase, userID uint) error {
	for _, p := range additions {
		if p.UserID != userID {
			log.Printf("Teams - User %d attempted to use purchase %d they don't own", userID, p.ID)
			return apperr.New(apperr.Forbidden, "POKEMON_NOT_OWNED",
				"You do not own some of the specified Pokemon")
		}
	}

	for _, p := range additions {
		if !IsCompatible(team.TeamType, p.PokemonTypes) {
			log.Printf("Teams - Compatibility validation failed for team %d: pokemon %d (%v) vs team type %s",
				team.ID, p.ID, p.PokemonTypes, team.TeamType)
			return apperr.New(apperr.Validation, "TYPE_MISMATCH",
				"Some Pokemon are incompatible with the team type")
		}
	}

	existing := make(map[uint]struct{}, len(team.Pokemons))
	for _, p := range team.Pokemons {
		existing[p.ID] = struct{}{}
	}
	for _, p := range additions {
		if _, ok := existing[p.ID]; ok {
			log.Printf("Teams - Attempt to add already-present pokemon %d to team %d", p.ID, team.ID)
			return apperr.New(apperr.Conflict, "ALREADY_EXIST", "Some Pokemon are already in this team")
		}
	}

	return nil
}
