package routes

import (
	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/http/handler"
	"byteapi/cmd/internal/http/middleware"
	"byteapi/cmd/internal/service"

	"github.com/labstack/echo/v4"
)

// Handlers groups every route handler mounted under /api.
type Handlers struct {
	Users         *handler.DefaultUserRoute
	TeamMembers   *handler.DefaultTeamMemberRoute
	Projects      *handler.DefaultProjectRoute
	Events        *handler.DefaultEventRoute
	Announcements *handler.DefaultAnnouncementRoute
	ActivityLog   *handler.DefaultActivityLogRoute

	// Uploads is nil when no bucket is configured.
	Uploads *handler.DefaultUploadRoute
}

func Register(e *echo.Echo, auth *middleware.Authenticator, h *Handlers) {
	e.GET("/", handler.GetRoot)

	api := e.Group("/api")
	api.GET("/health", handler.GetHealth)

	registerUserRoutes(api.Group("/users"), auth, h.Users)
	registerTeamMemberRoutes(api.Group("/team-members"), auth, h.TeamMembers)
	registerProjectRoutes(api.Group("/projects"), auth, h.Projects)
	registerEventRoutes(api.Group("/events"), auth, h.Events)
	registerAnnouncementRoutes(api.Group("/announcements"), auth, h.Announcements)
	registerActivityLogRoutes(api.Group("/activity-log"), auth, h.ActivityLog)

	if h.Uploads != nil {
		api.POST("/uploads", h.Uploads.UploadImage, auth.Require(entity.CapabilityAdmin))
	}
}

// registerCRUD mounts the template routes. Static sub-routes registered on
// the same group win over "/:id" regardless of order.
func registerCRUD(g *echo.Group, auth *middleware.Authenticator, access service.Access, r *handler.DefaultResourceRoute) {
	g.GET("", r.GetAll, auth.Require(access.Read))
	g.GET("/:id", r.GetOne, auth.Require(access.Read))
	g.POST("", r.Create, auth.Require(access.Create))
	g.PUT("/:id", r.Update, auth.Require(access.Update))
	g.PATCH("/:id", r.Update, auth.Require(access.Update))
	g.DELETE("/:id", r.Delete, auth.Require(access.Delete))
}

func registerUserRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultUserRoute) {
	// Any signed-in user may read their own profile; the rest of /users is admin or owner only.
	g.GET("/me", r.GetMe, auth.Require(entity.CapabilityAuthenticated))
	registerCRUD(g, auth, service.UserResource.Access, r.DefaultResourceRoute)
}

func registerTeamMemberRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultTeamMemberRoute) {
	access := service.TeamMemberResource.Access
	g.GET("/category/:category", r.GetByCategory, auth.Require(access.Read))
	registerCRUD(g, auth, access, r.DefaultResourceRoute)
}

func registerProjectRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultProjectRoute) {
	access := service.ProjectResource.Access
	g.GET("/type/:type", r.GetByType, auth.Require(access.Read))
	registerCRUD(g, auth, access, r.DefaultResourceRoute)
}

func registerEventRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultEventRoute) {
	access := service.EventResource.Access
	g.GET("/upcoming", r.GetUpcoming, auth.Require(access.Read))
	g.GET("/past", r.GetPast, auth.Require(access.Read))
	registerCRUD(g, auth, access, r.DefaultResourceRoute)
}

func registerAnnouncementRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultAnnouncementRoute) {
	access := service.AnnouncementResource.Access
	g.GET("/recent", r.GetRecent, auth.Require(access.Read))
	registerCRUD(g, auth, access, r.DefaultResourceRoute)
}

func registerActivityLogRoutes(g *echo.Group, auth *middleware.Authenticator, r *handler.DefaultActivityLogRoute) {
	access := service.ActivityLogResource.Access
	g.GET("/user/:user_id", r.GetByUser, auth.Require(access.Read))
	g.GET("/collection/:collection", r.GetByCollection, auth.Require(access.Read))
	g.GET("/document/:collection/:document_id", r.GetByDocument, auth.Require(access.Read))
	registerCRUD(g, auth, access, r.DefaultResourceRoute)
}
