// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/health", handler.Health)
}

// RegisterAuth registers the account and session endpoints.  Registration
// and token exchange are open; logout and the profile endpoint run behind
// the bearer-auth middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, bearer echo.MiddlewareFunc) {
	e.POST("/register", a.Register)
	e.POST("/token", a.Token)
	e.POST("/logout", a.Logout, bearer)
	e.GET("/user", a.Me, bearer)
}

// RegisterProjects registers all project-scoped endpoints behind the
// bearer-auth middleware.  Ownership checks happen inside the handlers,
// after the project-existence check, so the middleware only establishes
// identity.
func RegisterProjects(e *echo.Echo, h *handler.ProjectHandler, bearer echo.MiddlewareFunc) {
	g := e.Group("/projects", bearer)

	g.POST("", h.CreateProject)
	g.GET("", h.ListProjects)
	g.GET("/:id", h.GetProject)
	g.DELETE("/:id", h.DeleteProject)

	// File attachments: multipart upload, metadata listing, chunked download.
	g.POST("/:id/upload", h.UploadFile)
	g.GET("/:id/files", h.ListFiles)
	g.GET("/:id/files/:fileId/download", h.DownloadFile)

	// Child collections, all listed newest first.
	g.POST("/:id/notes", h.CreateNote)
	g.GET("/:id/notes", h.ListNotes)
	g.POST("/:id/signatures", h.CreateSignature)
	g.GET("/:id/signatures", h.ListSignatures)
	g.POST("/:id/timesheets", h.CreateTimesheet)
	g.GET("/:id/timesheets", h.ListTimesheets)
}
