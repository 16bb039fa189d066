package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/pkg/apperr"
)

func purchase(id uint, userID uint, name string, types ...string) card.PokemonPurchase {
	return card.PokemonPurchase{
		Model:        gorm.Model{ID: id},
		PokemonName:  name,
		PokemonTypes: types,
		UserID:       userID,
	}
}

func fireTeam(members ...card.PokemonPurchase) *Team {
	return &Team{
		Model:    gorm.Model{ID: 1},
		Name:     "Blaze Squad",
		TeamType: "fire",
		UserID:   7,
		Pokemons: members,
	}
}

func TestResolveAdditions(t *testing.T) {
	found := []card.PokemonPurchase{
		purchase(1, 7, "charmander", "fire"),
		purchase(2, 7, "vulpix", "fire"),
	}

	t.Run("all ids resolve", func(t *testing.T) {
		resolved, err := resolveAdditions([]uint{2, 1}, found)
		require.NoError(t, err)
		require.Len(t, resolved, 2)
		assert.Equal(t, uint(2), resolved[0].ID)
		assert.Equal(t, uint(1), resolved[1].ID)
	})

	t.Run("missing id fails with not found", func(t *testing.T) {
		_, err := resolveAdditions([]uint{1, 99}, found)
		require.Error(t, err)
		e, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, apperr.NotFound, e.Kind)
		assert.Equal(t, "NOT_FOUND", e.Code)
	})
}

func TestValidateCapacity(t *testing.T) {
	members := make([]card.PokemonPurchase, 5)
	for i := range members {
		members[i] = purchase(uint(i+1), 7, "charmander", "fire")
	}
	tm := fireTeam(members...)

	t.Run("filling the last slot passes", func(t *testing.T) {
		assert.NoError(t, validateCapacity(tm, 1))
	})

	t.Run("exceeding capacity fails", func(t *testing.T) {
		err := validateCapacity(tm, 2)
		require.Error(t, err)
		e, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, apperr.Validation, e.Kind)
		assert.Equal(t, "TEAM_CAPACITY_EXCEEDED", e.Code)
	})

	t.Run("full team rejects any addition", func(t *testing.T) {
		full := fireTeam(append(members, purchase(6, 7, "vulpix", "fire"))...)
		err := validateCapacity(full, 1)
		require.Error(t, err)
	})
}

func TestValidateAdditionsOwnership(t *testing.T) {
	tm := fireTeam()

	err := validateAdditions(tm, []card.PokemonPurchase{
		purchase(10, 7, "vulpix", "fire"),
		purchase(11, 8, "growlithe", "fire"), // someone else's purchase
	}, 7)
	require.Error(t, err)
	e, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Forbidden, e.Kind)
	assert.Equal(t, "POKEMON_NOT_OWNED", e.Code)
}

func TestValidateAdditionsCompatibility(t *testing.T) {
	tm := fireTeam()

	t.Run("incompatible type fails", func(t *testing.T) {
		err := validateAdditions(tm, []card.PokemonPurchase{purchase(10, 7, "squirtle", "water")}, 7)
		require.Error(t, err)
		e, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, apperr.Validation, e.Kind)
		assert.Equal(t, "TYPE_MISMATCH", e.Code)
	})

	t.Run("normal type joins a typed team", func(t *testing.T) {
		err := validateAdditions(tm, []card.PokemonPurchase{purchase(10, 7, "rattata", "normal")}, 7)
		assert.NoError(t, err)
	})

	t.Run("secondary type matches", func(t *testing.T) {
		err := validateAdditions(tm, []card.PokemonPurchase{purchase(10, 7, "charizard", "fire", "flying")}, 7)
		assert.NoError(t, err)
	})
}

func TestValidateAdditionsDuplicates(t *testing.T) {
	existing := purchase(10, 7, "vulpix", "fire")
	tm := fireTeam(existing)

	err := validateAdditions(tm, []card.PokemonPurchase{existing}, 7)
	require.Error(t, err)
	e, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Conflict, e.Kind)
	assert.Equal(t, "ALREADY_EXIST", e.Code)
}
