package router

import (
	"os"
	"strings"

	"concallalpha/internal/handlers"
	"concallalpha/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gdb *gorm.DB) {
	// Handlers
	companyHandler := handlers.NewCompanyHandler(gdb)
	commentHandler := handlers.NewCommentHandler(gdb)
	adminHandler := handlers.NewAdminHandler(gdb)

	// Every request resolves (or is issued) an anonymous visitor id.
	r.Use(middleware.VisitorIdentity())

	// Public pages
	r.GET("/", companyHandler.Home)                // growth outlook leaderboard
	r.GET("/company/:code", companyHandler.Detail) // scores, trend, summary, comments
	r.GET("/sectors", companyHandler.Sectors)      // sector sentiment rollup

	// Admin session
	r.GET("/admin/login", adminHandler.ShowLogin)
	r.POST("/admin/login", adminHandler.Login)
	r.GET("/admin/logout", adminHandler.Logout)

	// Moderation views
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Moderation)                       // comments by lookback window
		admin.GET("/reports", adminHandler.Reports)                  // reported comments
		admin.POST("/comments/:cid/status", adminHandler.SetStatus)  // moderation action
	}

	// JSON API
	api := r.Group("/api")
	api.Use(corsPolicy())
	{
		api.GET("/companies/:code", companyHandler.APICompany)
		api.GET("/leaderboard", companyHandler.APILeaderboard)
		api.GET("/sectors", companyHandler.APISectors)

		api.POST("/comments", commentHandler.Create)
		api.GET("/comments", commentHandler.List)
		api.POST("/comments/like", commentHandler.Like)
		api.POST("/comments/report", commentHandler.Report)
	}
}

// corsPolicy allows the configured origins with credentials so the
// visitor cookie flows; without configuration it stays permissive but
// credential-less.
func corsPolicy() gin.HandlerFunc {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return cors.Default()
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(origins, ",")
	config.AllowCredentials = true
	return cors.New(config)
}
