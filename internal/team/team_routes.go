package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/card"
	mw "github.com/dmartinezh/poketeams/internal/middleware"
)

// TeamRoutes sets up all team-related routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	teamRepo := NewTeamRepository(db)
	purchaseRepo := card.NewPurchaseRepository(db)
	controller := NewTeamController(teamRepo, purchaseRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.POST("/teams", controller.CreateTeam)
		authRoutes.POST("/teams/:teamId/pokemons", controller.AddPokemons)
	}
}
