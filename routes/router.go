package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/internal/catalog"
	"github.com/dmartinezh/poketeams/internal/mail"
	"github.com/dmartinezh/poketeams/internal/mysterybox"
	"github.com/dmartinezh/poketeams/internal/team"
	"github.com/dmartinezh/poketeams/internal/user"
)

var startedAt = time.Now()

func SetupRoutes() *gin.Engine {
	cfg := config.GetConfig()
	db := config.DB

	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uptime": time.Since(startedAt).Seconds()})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	client := catalog.NewClient(cfg.PokeAPI.BaseURL, time.Duration(cfg.PokeAPI.TimeoutSeconds)*time.Second)
	cache := mysterybox.NewCache(client)
	allocator := mysterybox.NewAllocator(cache)
	mailer := mail.NewMailer(cfg)

	api := r.Group("/")
	user.UserRoutes(api, db, mailer, cfg)
	card.CardRoutes(api, db, client, cfg)
	mysterybox.MysteryBoxRoutes(api, db, allocator, cfg)
	team.TeamRoutes(api, db, cfg)

	return r
}
