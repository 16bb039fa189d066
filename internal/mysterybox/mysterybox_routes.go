package mysterybox

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/card"
	mw "github.com/dmartinezh/poketeams/internal/middleware"
)

// MysteryBoxRoutes sets up the mystery box route.
func MysteryBoxRoutes(router *gin.RouterGroup, db *gorm.DB, allocator *Allocator, appConfig *config.Config) {
	purchaseRepo := card.NewPurchaseRepository(db)
	controller := NewMysteryBoxController(allocator, purchaseRepo, appConfig)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.POST("/mystery-box", controller.Purchase)
	}
}
