package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/officedesk/office-console/docs"
	"github.com/officedesk/office-console/internal/api/handler"
	"github.com/officedesk/office-console/internal/api/middleware"
	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/service"
	mongodb "github.com/officedesk/office-console/internal/infrastructure/db/mongo"
	redisdb "github.com/officedesk/office-console/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Repositories ---
	clientRepo := mongodb.NewClientRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	moduleRepo := mongodb.NewModuleRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	workLogRepo := mongodb.NewWorkLogRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	requirementRepo := mongodb.NewRequirementRepository(db)
	reportCache := redisdb.NewReportCache(rdb, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	clientService := service.NewClientService(clientRepo, projectRepo, userRepo, log)
	projectService := service.NewProjectService(projectRepo, clientRepo, log)
	moduleService := service.NewModuleService(moduleRepo, projectRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, log)
	workLogService := service.NewWorkLogService(workLogRepo, taskService, moduleRepo, projectRepo, clientRepo, log)
	userService := service.NewUserService(userRepo, taskRepo, log)
	requirementService := service.NewRequirementService(requirementRepo, clientRepo, log)
	reportService := service.NewReportService(projectRepo, moduleRepo, taskRepo, workLogRepo, reportCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	moduleHandler := handler.NewModuleHandler(moduleService)
	taskHandler := handler.NewTaskHandler(taskService)
	workLogHandler := handler.NewWorkLogHandler(workLogService)
	userHandler := handler.NewUserHandler(userService)
	requirementHandler := handler.NewRequirementHandler(requirementService)
	reportHandler := handler.NewReportHandler(reportService)

	auth := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	userManagers := middleware.RBAC(domain.RoleAdmin, domain.RoleClientAdmin)
	requirementWriters := middleware.RBAC(domain.RoleAdmin, domain.RoleClientAdmin, domain.RoleClientUser)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API v1 ---
	v1 := e.Group("/v1", auth)

	clients := v1.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create, adminOnly)
	clients.PUT("/:id", clientHandler.Update, adminOnly)
	clients.DELETE("/:id", clientHandler.Delete, adminOnly)

	projects := v1.Group("/projects")
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	modules := v1.Group("/modules")
	modules.POST("", moduleHandler.Create)
	modules.GET("", moduleHandler.List)
	modules.GET("/:id", moduleHandler.Get)
	modules.PUT("/:id", moduleHandler.Update)
	modules.DELETE("/:id", moduleHandler.Delete)

	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.GET("/:id/activities", taskHandler.Activities)
	tasks.GET("/:id/worklogs", workLogHandler.ListByTask)

	workLogs := v1.Group("/worklogs")
	workLogs.POST("", workLogHandler.Create)
	workLogs.DELETE("/:id", workLogHandler.Delete)

	users := v1.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, userManagers)
	users.PUT("/:id", userHandler.Update, userManagers)
	users.DELETE("/:id", userHandler.Delete, userManagers)

	requirements := v1.Group("/requirements")
	requirements.GET("", requirementHandler.List)
	requirements.GET("/:id", requirementHandler.Get)
	requirements.GET("/:id/activities", requirementHandler.Activities)
	requirements.POST("", requirementHandler.Create, requirementWriters)
	requirements.PUT("/:id", requirementHandler.Update, requirementWriters)
	requirements.DELETE("/:id", requirementHandler.Delete, requirementWriters)

	reports := v1.Group("/reports")
	reports.GET("/worklogs", reportHandler.Projects)
	reports.GET("/worklogs/modules", reportHandler.Modules)
	reports.GET("/worklogs/tasks", reportHandler.Tasks)
	reports.GET("/worklogs/export", reportHandler.Export)

	return e
}
