package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/abubakar1702/taskflow/internal/adapter/handler/http"
	"github.com/abubakar1702/taskflow/internal/config"
	"github.com/abubakar1702/taskflow/internal/infrastructure/database"
	"github.com/abubakar1702/taskflow/internal/middleware/auth"
	"github.com/abubakar1702/taskflow/internal/usecase"
	"github.com/abubakar1702/taskflow/pkg/logger"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	blobs  usecase.BlobStore
	sink   usecase.NotificationSink
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, blobs usecase.BlobStore, sink usecase.NotificationSink) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))
	logger.WithEchoErrorHandler(e, log)

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
		blobs:  blobs,
		sink:   sink,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Wire usecases
	accessService := usecase.NewAccessService(s.repos.Project, s.repos.Member, s.repos.Task, s.logger)
	notificationService := usecase.NewNotificationService(s.repos.Notification, s.sink, s.logger)
	taskService := usecase.NewTaskService(s.repos.Tx, s.repos.Task, s.repos.Subtask, s.repos.Asset, s.repos.ImportantTask, accessService, notificationService, s.blobs, s.logger)
	memberService := usecase.NewProjectMemberService(s.repos.Tx, s.repos.Member, s.repos.Task, s.repos.Subtask, s.repos.Asset, s.repos.User, accessService, taskService, notificationService, s.blobs, s.logger)
	projectService := usecase.NewProjectService(s.repos.Tx, s.repos.Project, s.repos.Member, s.repos.Task, s.repos.Asset, accessService, taskService, s.logger)
	subtaskService := usecase.NewSubtaskService(s.repos.Subtask, accessService, s.logger)
	assetService := usecase.NewAssetService(s.repos.Asset, accessService, s.blobs, s.logger)
	importantService := usecase.NewImportantTaskService(s.repos.ImportantTask, accessService)
	teamService := usecase.NewTeamService(s.repos.User, s.repos.Member, s.repos.Task, s.repos.Project)
	noteService := usecase.NewNoteService(s.repos.Note)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, s.logger)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService, s.logger)
	projectHandler := handlers.NewProjectHandler(projectService, s.logger)
	memberHandler := handlers.NewMemberHandler(memberService, s.logger)
	assetHandler := handlers.NewAssetHandler(assetService, s.logger)
	importantHandler := handlers.NewImportantTaskHandler(importantService, s.logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, s.logger)
	noteHandler := handlers.NewNoteHandler(noteService, s.logger)
	teamHandler := handlers.NewTeamHandler(teamService, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes, all behind authentication
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Tasks
	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.POST("/:id/assignees", taskHandler.AddAssignee)
	tasks.DELETE("/:id/assignees/:userId", taskHandler.RemoveAssignee)
	tasks.POST("/:id/leave", taskHandler.Leave)
	tasks.GET("/:id/subtasks", subtaskHandler.List)
	tasks.POST("/:id/subtasks", subtaskHandler.Create)
	tasks.PATCH("/:id/subtasks/:subtaskId", subtaskHandler.Update)
	tasks.DELETE("/:id/subtasks/:subtaskId", subtaskHandler.Delete)
	tasks.GET("/:id/assets", assetHandler.ListByTask)
	tasks.POST("/:id/important", importantHandler.Mark)
	tasks.DELETE("/:id/important", importantHandler.Unmark)

	// Projects
	projects := v1.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.GET("/:id/members", memberHandler.List)
	projects.POST("/:id/members", memberHandler.Add)
	projects.PATCH("/:id/members/:memberId", memberHandler.UpdateRole)
	projects.DELETE("/:id/members/:memberId", memberHandler.Remove)
	projects.GET("/:id/assets", assetHandler.ListByProject)

	// Assets
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.Upload)
	assets.GET("/:id/download", assetHandler.Download)
	assets.DELETE("/:id", assetHandler.Delete)

	// Important tasks
	v1.GET("/important-tasks", importantHandler.List)

	// Notifications
	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// Notes
	notes := v1.Group("/notes")
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/pinned", noteHandler.ListPinned)
	notes.GET("/:id", noteHandler.Get)
	notes.PATCH("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// Team & search
	v1.GET("/team", teamHandler.Team)
	v1.GET("/search", teamHandler.Search)
	v1.GET("/assignee-search", teamHandler.SearchAssignees)
}
