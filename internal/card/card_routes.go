package card

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/catalog"
	mw "github.com/dmartinezh/poketeams/internal/middleware"
)

// CardRoutes sets up the catalog proxy and purchase ledger routes.
func CardRoutes(router *gin.RouterGroup, db *gorm.DB, client *catalog.Client, appConfig *config.Config) {
	repo := NewPurchaseRepository(db)
	controller := NewCardController(repo, client, appConfig)

	router.GET("/cards", controller.GetAllCards)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.POST("/cards/purchase", controller.PurchaseCard)
		authRoutes.GET("/cards/collection", controller.GetCollection)
	}
}
