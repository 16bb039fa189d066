package card

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/catalog"
	"github.com/dmartinezh/poketeams/internal/middleware"
	"github.com/dmartinezh/poketeams/pkg/apperr"
	"github.com/dmartinezh/poketeams/pkg/responses"
	"github.com/dmartinezh/poketeams/pkg/validator"
)

// CardController handles the card catalog proxy and the purchase ledger.
type CardController struct {
	repo   PurchaseRepository
	client *catalog.Client
	config *config.Config
}

// NewCardController creates a new CardController.
func NewCardController(repo PurchaseRepository, client *catalog.Client, cfg *config.Config) *CardController {
	return &CardController{
		repo:   repo,
		client: client,
		config: cfg,
	}
}

type PurchaseRequest struct {
	PokemonName string `json:"pokemonName" binding:"required,min=1,max=100"`
}

// GetAllCards godoc
// @Summary List available Pokémon
// @Description Proxies the PokeAPI name listing
// @Tags Cards
// @Produce json
// @Param limit query int false "Page size" default(151)
// @Success 200 {object} catalog.PokemonList
// @Failure 503 {object} responses.ErrorResponse "Catalog unavailable"
// @Router /cards [get]
func (cc *CardController) GetAllCards(c *gin.Context) {
	limit := cc.config.PokeAPI.PokemonLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := cc.client.ListPokemon(c.Request.Context(), limit)
	if err != nil {
		responses.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// PurchaseCard godoc
// @Summary Purchase a Pokémon by name
// @Tags Cards
// @Accept json
// @Produce json
// @Param purchase body PurchaseRequest true "Pokémon to purchase"
// @Success 201 {object} PurchaseResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Already purchased"
// @Failure 503 {object} responses.ErrorResponse "Catalog unavailable"
// @Router /cards/purchase [post]
// @Security BearerAuth
func (cc *CardController) PurchaseCard(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	purchase, err := cc.purchase(c, userID, req.PokemonName)
	if err != nil {
		responses.SendError(c, err)
		return
	}

	log.Printf("PokeAPI - Pokemon purchase completed successfully for user %d.", userID)
	c.JSON(http.StatusCreated, purchase.ToResponse())
}

// purchase runs the direct-purchase flow: normalize, fetch detail,
// duplicate check, price, persist.
func (cc *CardController) purchase(c *gin.Context, userID uint, pokemonName string) (*PokemonPurchase, error) {
	normalized := catalog.NormalizeName(pokemonName)

	pokemon, err := cc.client.GetPokemon(c.Request.Context(), normalized)
	if err != nil {
		return nil, err
	}

	existing, err := cc.repo.FindByUserAndName(userID, pokemon.Name)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to verify Pokemon purchase status", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "DUPLICATE_PURCHASE",
			fmt.Sprintf("You have already purchased %s", pokemon.Name))
	}

	purchase := &PokemonPurchase{
		PokemonID:    pokemon.ID,
		PokemonName:  pokemon.Name,
		PokemonImage: pokemon.Sprites.FrontDefault,
		PokemonTypes: pokemon.TypeNames(),
		UserID:       userID,
		Price:        CalculatePrice(pokemon),
	}

	if err := cc.repo.Create(purchase); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to complete Pokemon purchase", err)
	}
	return purchase, nil
}

// GetCollection godoc
// @Summary Get the authenticated user's purchase history
// @Tags Cards
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]PurchaseResponse}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /cards/collection [get]
// @Security BearerAuth
func (cc *CardController) GetCollection(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	page, limit := responses.ParsePageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	purchases, total, err := cc.repo.ListByUser(userID, page, limit)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "DATABASE_ERROR", "Failed to retrieve Pokemon collection", err))
		return
	}

	data := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		data = append(data, purchases[i].ToResponse())
	}

	responses.SendPaginated(c, data, page, limit, total)
}
