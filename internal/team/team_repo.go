package team

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/pkg/apperr"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamWithPokemons(teamID uint) (*Team, error)
	AddPokemons(teamID uint, additions []card.PokemonPurchase) (*Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// CreateTeam persists a new team. A (user_id, team_type) unique
// violation surfaces as a tagged conflict.
func (r *teamRepository) CreateTeam(team *Team) error {
	if err := r.db.Create(team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.Conflict, "ALREADY_EXIST",
				fmt.Sprintf("A team of type '%s' already exists.", team.TeamType))
		}
		return apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to create team", err)
	}
	return nil
}

func (r *teamRepository) GetTeamWithPokemons(teamID uint) (*Team, error) {
	var team Team
	if err := r.db.Preload("Pokemons").First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// AddPokemons appends the validated additions to the team atomically.
// The team row is locked for the duration of the transaction and the
// capacity is re-checked against the locked state, so two concurrent
// adds cannot jointly exceed the cap.
func (r *teamRepository) AddPokemons(teamID uint, additions []card.PokemonPurchase) (*Team, error) {
	var updated *Team

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var team Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, teamID).Error; err != nil {
			return err
		}
		if err := tx.Preload("Pokemons").First(&team, teamID).Error; err != nil {
			return err
		}

		if len(team.Pokemons)+len(additions) > MaxTeamSize {
			return apperr.New(apperr.Validation, "TEAM_CAPACITY_EXCEEDED",
				fmt.Sprintf("Cannot add %d Pokemon. Team would exceed maximum size of %d. Current: %d",
					len(additions), MaxTeamSize, len(team.Pokemons)))
		}

		if err := tx.Model(&team).Association("Pokemons").Append(&additions); err != nil {
			return err
		}

		if err := tx.Preload("Pokemons").First(&team, teamID).Error; err != nil {
			return err
		}
		updated = &team
		return nil
	})
	if err != nil {
		if _, ok := apperr.From(err); ok {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to add Pokemon to team", err)
	}

	return updated, nil
}
