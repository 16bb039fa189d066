package mysterybox

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/internal/middleware"
	"github.com/dmartinezh/poketeams/pkg/apperr"
	"github.com/dmartinezh/poketeams/pkg/responses"
)

// MysteryBoxPrice is the fixed cost of opening one mystery box.
const MysteryBoxPrice = 100

const maxPoolLimit = 2000

// MysteryBoxController handles allocator-driven purchases.
type MysteryBoxController struct {
	allocator *Allocator
	purchases card.PurchaseRepository
	config    *config.Config
}

// NewMysteryBoxController creates a new MysteryBoxController.
func NewMysteryBoxController(allocator *Allocator, purchases card.PurchaseRepository, cfg *config.Config) *MysteryBoxController {
	return &MysteryBoxController{
		allocator: allocator,
		purchases: purchases,
		config:    cfg,
	}
}

// MysteryBoxPurchaseResponse enriches a purchase with the drawn rarity.
type MysteryBoxPurchaseResponse struct {
	card.PurchaseResponse
	Rarity Rarity `json:"rarity"`
}

// Purchase godoc
// @Summary Open a mystery box
// @Description Draws a random Pokémon weighted by rarity and records the purchase
// @Tags MysteryBox
// @Produce json
// @Param limit query int false "Catalog pool size" default(151)
// @Success 201 {object} responses.SuccessResponse{data=MysteryBoxPurchaseResponse}
// @Failure 500 {object} responses.ErrorResponse "No items available"
// @Failure 503 {object} responses.ErrorResponse "Catalog unavailable"
// @Router /mystery-box [post]
// @Security BearerAuth
func (mc *MysteryBoxController) Purchase(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Unauthenticated, "AUTHENTICATION_ERROR", "Authentication required", err))
		return
	}

	limit := mc.config.PokeAPI.PokemonLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPoolLimit {
			responses.SendError(c, apperr.New(apperr.Validation, "INVALID_REQUEST",
				fmt.Sprintf("limit must be an integer between 1 and %d", maxPoolLimit)))
			return
		}
		limit = parsed
	}

	log.Printf("Mystery Box - User %d initiating mystery box purchase", userID)

	pokemon, rarity, err := mc.allocator.Draw(c.Request.Context(), limit)
	if err != nil {
		responses.SendError(c, err)
		return
	}

	// Same enrichment as a direct purchase; deliberately no duplicate
	// check, the box may re-drop an already-owned Pokémon.
	purchase := &card.PokemonPurchase{
		PokemonID:    pokemon.ID,
		PokemonName:  pokemon.Name,
		PokemonImage: pokemon.Sprites.FrontDefault,
		PokemonTypes: pokemon.TypeNames(),
		UserID:       userID,
		Price:        card.CalculatePrice(&pokemon),
	}

	if err := mc.purchases.Create(purchase); err != nil {
		responses.SendError(c, apperr.Wrap(apperr.Internal, "MYSTERY_BOX_PURCHASE_ERROR",
			"Failed to complete mystery box purchase", err))
		return
	}

	log.Printf("Mystery Box - User %d successfully purchased %s (%s rarity, value: %v) from mystery box (cost: %d)",
		userID, pokemon.Name, rarity, purchase.Price, MysteryBoxPrice)

	c.JSON(http.StatusCreated, responses.SuccessResponse{
		Message: fmt.Sprintf("Congratulations! You got a %s Pokemon!", rarity),
		Data: MysteryBoxPurchaseResponse{
			PurchaseResponse: purchase.ToResponse(),
			Rarity:           rarity,
		},
	})
}
