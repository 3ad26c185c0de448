// Package routes wires the HTTP surface onto the service container.
package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/container"
	"github.com/dzakyfr/portfolio-go/internal/presentation/http/handlers"
	"github.com/dzakyfr/portfolio-go/internal/presentation/http/middleware"
	"github.com/dzakyfr/portfolio-go/pkg/config"
)

// SetupRoutes builds the gin engine with all routes and middleware.
func SetupRoutes(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	authHandlers := handlers.NewAuthHandlers(c.SessionService, c.Logger)
	contentHandlers := handlers.NewContentHandlers(c)
	editorHandlers := handlers.NewEditorHandlers(c)
	messageHandlers := handlers.NewMessageHandlers(c.MessageService)
	analyticsHandlers := handlers.NewAnalyticsHandlers(c.AnalyticsService)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded media is served straight off disk.
	router.Static(config.UploadPrefix, filepath.Join(config.MediaBasePath, "uploads"))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetStatus)
		}

		contentGroup := v1.Group("/content")
		{
			contentGroup.GET("/about", contentHandlers.GetAbout)
			contentGroup.GET("/contact", contentHandlers.GetContact)
			contentGroup.GET("/projects", contentHandlers.GetProjects)
			contentGroup.GET("/certificates", contentHandlers.GetCertificates)
			contentGroup.GET("/techstack", contentHandlers.GetTechStack)
		}

		v1.POST("/messages", contentHandlers.PostMessage)

		analyticsGroup := v1.Group("/analytics")
		{
			analyticsGroup.POST("/visit", analyticsHandlers.PostVisit)
			analyticsGroup.POST("/pageview", analyticsHandlers.PostPageView)
		}

		editorGroup := v1.Group("/editor")
		editorGroup.Use(middleware.AdminAuthMiddleware(c.SessionService))
		{
			editorGroup.GET("/state", editorHandlers.GetState)
			editorGroup.POST("/mode", editorHandlers.PostMode)
			editorGroup.POST("/save", editorHandlers.PostSave)
			editorGroup.POST("/cancel", editorHandlers.PostCancel)
			editorGroup.POST("/confirm", editorHandlers.PostConfirm)
			editorGroup.POST("/media", editorHandlers.PostMedia)
			editorGroup.GET("/stream", editorHandlers.GetStream)

			sections := editorGroup.Group("/sections")
			{
				sections.PUT("/about", editorHandlers.PutAboutDraft)
				sections.PUT("/contact", editorHandlers.PutContactDraft)
				sections.PUT("/projects", editorHandlers.PutProjectsDraft)
				sections.PUT("/certificates", editorHandlers.PutCertificatesDraft)
				sections.PUT("/techstack", editorHandlers.PutTechStackDraft)
				sections.POST("/:section/save", editorHandlers.PostSectionSave)
				sections.POST("/:section/blur", editorHandlers.PostSectionBlur)
				sections.POST("/:section/image", editorHandlers.PostSectionImage)
				sections.DELETE("/:section/items/:index", editorHandlers.DeleteListItem)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(c.SessionService))
		{
			admin.GET("/messages", messageHandlers.GetMessages)
			admin.PUT("/messages/:id/read", messageHandlers.PutMessageRead)
			admin.DELETE("/messages/:id", messageHandlers.DeleteMessage)
			admin.GET("/analytics/stats", analyticsHandlers.GetStats)
			admin.GET("/analytics/activities", analyticsHandlers.GetActivities)
		}
	}

	return router
}
