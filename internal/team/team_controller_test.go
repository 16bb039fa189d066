package team

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/internal/middleware"
)

type fakeTeamRepo struct {
	team *Team
}

func (f *fakeTeamRepo) CreateTeam(team *Team) error { return nil }

func (f *fakeTeamRepo) GetTeamWithPokemons(teamID uint) (*Team, error) {
	return f.team, nil
}

func (f *fakeTeamRepo) AddPokemons(teamID uint, additions []card.PokemonPurchase) (*Team, error) {
	merged := *f.team
	merged.Pokemons = append(append([]card.PokemonPurchase{}, f.team.Pokemons...), additions...)
	return &merged, nil
}

type fakePurchaseStore struct {
	purchases       []card.PokemonPurchase
	findByIDsCalled bool
}

func (f *fakePurchaseStore) Create(p *card.PokemonPurchase) error { return nil }

func (f *fakePurchaseStore) FindByUserAndName(userID uint, name string) (*card.PokemonPurchase, error) {
	return nil, nil
}

func (f *fakePurchaseStore) FindByIDs(ids []uint) ([]card.PokemonPurchase, error) {
	f.findByIDsCalled = true
	var out []card.PokemonPurchase
	for _, id := range ids {
		for _, p := range f.purchases {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakePurchaseStore) ListByUser(userID uint, page, limit int) ([]card.PokemonPurchase, int64, error) {
	return nil, 0, nil
}

func addPokemonsContext(t *testing.T, teamID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/teams/"+teamID+"/pokemons", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "teamId", Value: teamID}}
	c.Set(middleware.AuthUserIDKey, uint(7))
	return c, rec
}

func TestAddPokemonsReportsCapacityBeforePurchaseLookup(t *testing.T) {
	members := make([]card.PokemonPurchase, MaxTeamSize)
	for i := range members {
		members[i] = purchase(uint(i+1), 7, "charmander", "fire")
	}
	store := &fakePurchaseStore{}
	controller := NewTeamController(&fakeTeamRepo{team: fireTeam(members...)}, store)

	// The requested ids do not exist; a full team must still be reported
	// as over capacity, not as a missing-purchase lookup failure.
	c, rec := addPokemonsContext(t, "1", AddPokemonsRequest{PokemonIDs: []uint{98, 99}})
	controller.AddPokemons(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		InternalCode string `json:"internal_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TEAM_CAPACITY_EXCEEDED", body.InternalCode)
	assert.False(t, store.findByIDsCalled)
}

func TestAddPokemonsResponseCarriesMessage(t *testing.T) {
	store := &fakePurchaseStore{purchases: []card.PokemonPurchase{
		purchase(10, 7, "vulpix", "fire"),
	}}
	controller := NewTeamController(&fakeTeamRepo{team: fireTeam()}, store)

	c, rec := addPokemonsContext(t, "1", AddPokemonsRequest{PokemonIDs: []uint{10}})
	controller.AddPokemons(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		Data    struct {
			Team          TeamResponse            `json:"team"`
			AddedPokemons []card.PurchaseResponse `json:"addedPokemons"`
			TeamSize      int                     `json:"teamSize"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1 Pokemon added to team 'Blaze Squad' successfully", body.Message)
	assert.Equal(t, "Blaze Squad", body.Data.Team.Name)
	assert.Equal(t, 1, body.Data.TeamSize)
	require.Len(t, body.Data.AddedPokemons, 1)
	assert.Equal(t, "vulpix", body.Data.AddedPokemons[0].PokemonName)
}

func TestAddPokemonsForeignTeamIsNotFound(t *testing.T) {
	foreign := fireTeam()
	foreign.UserID = 8
	controller := NewTeamController(&fakeTeamRepo{team: foreign}, &fakePurchaseStore{})

	c, rec := addPokemonsContext(t, "1", AddPokemonsRequest{PokemonIDs: []uint{10}})
	controller.AddPokemons(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
