package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/mail"
	mw "github.com/dmartinezh/poketeams/internal/middleware"
)

// UserRoutes sets up registration, login and account routes.
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, mailer *mail.Mailer, appConfig *config.Config) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo, mailer, appConfig)

	router.POST("/users", controller.Register)
	router.POST("/users/login", controller.Login)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.GET("/users", controller.GetUsers)
		authRoutes.GET("/users/:id", controller.GetUserByID)
		authRoutes.POST("/users/logout", controller.Logout)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(mw.AdminMiddleware(db))
	{
		adminRoutes.POST("/users", controller.CreateAdminUser)
	}
}
