package team

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/internal/middleware"
	"github.com/dmartinezh/poketeams/pkg/apperr"
	"github.com/dmartinezh/poketeams/pkg/responses"
	"github.com/dmartinezh/poketeams/pkg/validator"
)

// TeamController handles team creation and composition.
type TeamController struct {
	repo      TeamRepository
	purchases card.PurchaseRepository
}

// NewTeamController creates a new TeamController.
func NewTeamController(repo TeamRepository, purchases card.PurchaseRepository) *TeamController {
	return &TeamController{
		repo:      repo,
		purchases: purchases,
	}
}

type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=30"`
	TeamType string `json:"teamType" binding:"required,oneof=normal fire water grass electric ice fighting poison ground flying psychic bug rock ghost dragon dark steel fairy"`
}

type AddPokemonsRequest struct {
	PokemonIDs []uint `json:"pokemonIds" binding:"required,min=1,max=6"`
}

// CreateTeam godoc
// @Summary Create a team
// @Description Creates an empty team; one team per type per user
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team to create"
// @Success 201 {object} TeamResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Team of this type already exists"
// @Router /teams [post]
// @Security BearerAuth
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	log.Printf("Teams - Initiating team creation for user %d with type %s", userID, req.TeamType)

	team := &Team{
		Name:     req.Name,
		TeamType: req.TeamType,
		UserID:   userID,
	}
	if err := tc.repo.CreateTeam(team); err != nil {
		responses.SendError(c, err)
		return
	}

	log.Printf("Teams - Team '%s' created successfully for user %d.", team.Name, userID)
	c.JSON(http.StatusCreated, team.ToResponse())
}

// AddPokemons godoc
// @Summary Add Pokémon to a team
// @Description Validates ownership, capacity, type compatibility and duplicates, then adds all requested Pokémon atomically
// @Tags Teams
// @Accept json
// @Produce json
// @Param teamId path int true "Team ID"
// @Param pokemons body AddPokemonsRequest true "Purchase ids to add"
// @Success 200 {object} responses.SuccessResponse{data=AddPokemonsResponse}
// @Failure 400 {object} responses.ErrorResponse "Capacity exceeded or type mismatch"
// @Failure 403 {object} responses.ErrorResponse "Pokémon not owned"
// @Failure 404 {object} responses.ErrorResponse "Team or purchase not found"
// @Failure 409 {object} responses.ErrorResponse "Pokémon already in team"
// @Router /teams/{teamId}/pokemons [post]
// @Security BearerAuth
func (tc *TeamController) AddPokemons(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 32)
	if err != nil {
		responses.SendError(c, apperr.New(apperr.Validation, "INVALID_REQUEST", "Invalid team ID format"))
		return
	}

	var req AddPokemonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	log.Printf("Teams - Adding %d pokemons to team %d by user %d", len(req.PokemonIDs), teamID, userID)

	// One consistent read of team+members; all checks run against it.
	team, err := tc.repo.GetTeamWithPokemons(uint(teamID))
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to load team", err))
		return
	}
	if team == nil || team.UserID != userID {
		log.Printf("Teams - Team %d not found or not owned by user %d", teamID, userID)
		responses.SendError(c, apperr.New(apperr.NotFound, "NOT_FOUND",
			"Team not found or you do not have permission to modify it"))
		return
	}

	if err := validateCapacity(team, len(req.PokemonIDs)); err != nil {
		responses.SendError(c, err)
		return
	}

	found, err := tc.purchases.FindByIDs(req.PokemonIDs)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to load purchases", err))
		return
	}

	additions, err := resolveAdditions(req.PokemonIDs, found)
	if err != nil {
		responses.SendError(c, err)
		return
	}

	if err := validateAdditions(team, additions, userID); err != nil {
		responses.SendError(c, err)
		return
	}

	updated, err := tc.repo.AddPokemons(team.ID, additions)
	if err != nil {
		responses.SendError(c, err)
		return
	}

	log.Printf("Teams - Added %d pokemons to team %d successfully", len(additions), team.ID)

	added := make([]card.PurchaseResponse, 0, len(additions))
	for i := range additions {
		added = append(added, additions[i].ToResponse())
	}

	responses.SendSuccess(c, http.StatusOK,
		fmt.Sprintf("%d Pokemon added to team '%s' successfully", len(added), updated.Name),
		AddPokemonsResponse{
			Team:          updated.ToResponse(),
			AddedPokemons: added,
			TeamSize:      len(updated.Pokemons),
		})
}
