package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Turnos-api/internal/application/analytics"
	"github.com/jhoicas/Turnos-api/internal/application/auth"
	"github.com/jhoicas/Turnos-api/internal/application/task"
	"github.com/jhoicas/Turnos-api/internal/application/usecase"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TaskSvc     *task.Service
	Exporter    task.Exporter
	UserUC      *usecase.UserUseCase
	CardUC      *usecase.CardRecordUseCase
	ClosureUC   *usecase.ClosureUseCase
	AnalyticsUC *analytics.UseCase
	DB          Pinger
	ServiceName string
}

// NewApp crea la aplicación Fiber con el manejo de errores y los middlewares comunes.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New())
	app.Use(AccessLog(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.DB))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	positions := protected.Group("/positions")
	positions.Get("/", userHandler.ListPositions)
	positions.Post("/", adminOnly, userHandler.CreatePosition)
	positions.Patch("/:id", adminOnly, userHandler.RenamePosition)
	positions.Get("/:id/users", userHandler.ListPositionUsers)

	// /tasks/export antes de /tasks/:id
	taskHandler := NewTaskHandler(deps.TaskSvc, deps.Exporter)
	tasks := protected.Group("/tasks")
	tasks.Get("/", taskHandler.List)
	tasks.Get("/export", taskHandler.Export)
	tasks.Post("/", adminOnly, taskHandler.Create)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Post("/:id/duplicate", adminOnly, taskHandler.Duplicate)
	tasks.Delete("/:id", adminOnly, taskHandler.Delete)

	cardHandler := NewCardRecordHandler(deps.CardUC)
	cards := protected.Group("/card-records")
	cards.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), cardHandler.Upsert)
	cards.Get("/", cardHandler.List)
	cards.Get("/summary", cardHandler.Summary)

	closureHandler := NewClosureHandler(deps.ClosureUC)
	closures := protected.Group("/closures")
	closures.Post("/", closureHandler.Create)
	closures.Get("/", closureHandler.List)
	closures.Get("/:id", closureHandler.Get)
	closures.Get("/:id/pdf", closureHandler.PDF)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	an := protected.Group("/analytics")
	an.Get("/ranking", analyticsHandler.Ranking)
	an.Get("/positions", analyticsHandler.Positions)
}
