package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/recommendation-service/internal/api/http/handlers"
	"github.com/spec-kit/recommendation-service/internal/auth"
	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health                 *handlers.HealthHandler
	Users                  *handlers.UsersHandler
	RequestTypes           *handlers.RequestTypesHandler
	RecommendationRequests *handlers.RecommendationRequestsHandler
	ProfessorRequests      *handlers.ProfessorRequestsHandler
	AuthMiddleware         *auth.AuthMiddleware
	Metrics                *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/systemInfo", cfg.Health.SystemInfo)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/currentUser", cfg.Users.CurrentUser)
	protected.Get("/admin/users/professors", cfg.Users.Professors)

	types := protected.Group("/requesttypes")
	types.Get("/all", cfg.RequestTypes.ListAll)
	types.Post("/post", auth.RequireRole(domain.RoleAdmin), cfg.RequestTypes.Create)

	recs := protected.Group("/recommendationrequest")
	recs.Get("", cfg.RecommendationRequests.Get)
	recs.Get("/requester/all", cfg.RecommendationRequests.ListMine)
	recs.Post("/post", cfg.RecommendationRequests.Create)
	recs.Put("", cfg.RecommendationRequests.UpdateAsOwner)
	recs.Delete("", cfg.RecommendationRequests.DeleteAsOwner)

	professor := auth.RequireRole(domain.RoleProfessor)
	recs.Get("/professor/all", professor, cfg.ProfessorRequests.ListAll)
	recs.Get("/professor/filtered", professor, cfg.ProfessorRequests.ListFiltered)
	recs.Put("/professor", professor, cfg.RecommendationRequests.UpdateAsProfessor)

	admin := auth.RequireRole(domain.RoleAdmin)
	recs.Get("/admin/all", admin, cfg.RecommendationRequests.ListAll)
	recs.Delete("/admin", admin, cfg.RecommendationRequests.DeleteAsAdmin)
}
