package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/cache"
	persistence "jobboard/internal/infrastructure/persistence/postgres"
	"jobboard/internal/pkg/jwt"
	ucapp "jobboard/internal/usecase/application"
	ucauth "jobboard/internal/usecase/auth"
	ucjob "jobboard/internal/usecase/job"
	"jobboard/internal/ws"
)

// Deps carries the shared infrastructure the route graph is built from.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

type Registry struct {
	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	jobs         *handler.JobsHandler
	applications *handler.ApplicationsHandler
	feed         *ws.Handler

	authMw *middleware.AuthMiddleware
}

func NewRegistry(deps Deps) *Registry {
	users := persistence.NewUserRepository(deps.DB)
	jobs := persistence.NewJobRepository(deps.DB)
	applications := persistence.NewApplicationRepository(deps.DB)

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authUC := ucauth.NewService(users, jwtSvc)
	jobUC := ucjob.NewService(jobs, deps.Cache, ws.NewNotifier(deps.Hub), deps.Logger)
	appUC := ucapp.NewService(applications, jobs)

	return &Registry{
		health:       handler.NewHealthHandler(deps.DB),
		auth:         handler.NewAuthHandler(authUC, deps.Config.JWT.AccessExpiresIn, deps.Config.JWT.RefreshExpiresIn),
		jobs:         handler.NewJobsHandler(jobUC),
		applications: handler.NewApplicationsHandler(appUC),
		feed:         ws.NewHandler(deps.Hub, deps.Logger),
		authMw:       middleware.NewAuthMiddleware(jwtSvc, users),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerFeed(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	requireAuth := r.authMw.Middleware()
	requireEmployer := middleware.RequireRoles(user.RoleEmployer)
	requireJobseeker := middleware.RequireRoles(user.RoleJobseeker)

	api := app.Group("/api")
	r.auth.RegisterRoutes(api.Group("/auth"), requireAuth)
	r.jobs.RegisterRoutes(api.Group("/jobs"), requireAuth, requireEmployer)
	r.applications.RegisterRoutes(api.Group("/applications"), requireAuth, requireJobseeker, requireEmployer)
}

func (r *Registry) registerFeed(app *fiber.App) {
	app.Get("/ws/jobs", r.feed.HandleJobsFeed)
}
