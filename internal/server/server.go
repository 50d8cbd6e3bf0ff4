package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"planboard/internal/config"
	"planboard/internal/handler"
	"planboard/internal/loader"
	"planboard/internal/middleware"
	"planboard/internal/projection"
	"planboard/internal/workspace"
)

type Server struct {
	Engine *gin.Engine
	App    *workspace.App
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	if err := setupLogging(cfg.LogLevel); err != nil {
		return nil, err
	}
	mode, err := projection.ParsePriorityMode(cfg.PriorityGrouping)
	if err != nil {
		return nil, fmt.Errorf("❌ invalid PRIORITY_GROUPING: %w", err)
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("❌ failed to register validators: %w", err)
	}

	// Load the workspace
	app := workspace.Load(context.Background(), loader.NewDirLoader(cfg.DataDir), workspace.Options{
		PageSize:        cfg.DefaultPageSize,
		PriorityMode:    mode,
		NotificationTTL: cfg.NotificationTTL,
	})
	logrus.Infof("✅ Workspace loaded from %s", cfg.DataDir)

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.ErrorHandling())
	Routes(r, app)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		App:    app,
		Config: cfg,
	}, nil
}

// Routes registers every API route on r.
func Routes(r gin.IRouter, app *workspace.App) {
	projectHandler := handler.NewProjectHandler(app)
	taskHandler := handler.NewTaskHandler(app)
	statusHandler := handler.NewStatusHandler(app)
	labelHandler := handler.NewLabelHandler(app)
	viewHandler := handler.NewViewHandler(app)
	notificationHandler := handler.NewNotificationHandler(app)

	r.GET("/workspace", viewHandler.Workspace)

	// Project routes
	r.GET("/projects", projectHandler.GetAll)
	r.POST("/projects", projectHandler.Create)
	r.PUT("/projects/:slug", projectHandler.Update)
	r.DELETE("/projects/:slug", projectHandler.Delete)
	r.POST("/projects/:slug/archive", projectHandler.ToggleArchive)
	r.POST("/projects/:slug/favorite", projectHandler.ToggleFavorite)

	// Render and event routes
	r.GET("/projects/:slug/:tab", viewHandler.Render)
	r.POST("/events", viewHandler.Dispatch)

	// Task routes
	r.POST("/projects/:slug/tasks", taskHandler.Create)
	r.PATCH("/tasks/:id", taskHandler.Update)
	r.POST("/tasks/:id/move", taskHandler.Move)
	r.POST("/tasks/:id/archive", taskHandler.Archive)
	r.POST("/tasks/:id/restore", taskHandler.Restore)
	r.POST("/tasks/:id/labels/:label_id", taskHandler.AddLabel)
	r.DELETE("/tasks/:id/labels/:label_id", taskHandler.RemoveLabel)

	// Status routes
	r.POST("/projects/:slug/statuses", statusHandler.Create)
	r.PUT("/projects/:slug/statuses", statusHandler.Reorder)
	r.PATCH("/statuses/:id", statusHandler.Update)
	r.DELETE("/statuses/:id", statusHandler.Delete)

	// Label routes
	r.POST("/projects/:slug/labels", labelHandler.Create)
	r.DELETE("/labels/:id", labelHandler.Delete)

	// Notification routes
	r.GET("/notifications", notificationHandler.GetAll)
	r.DELETE("/notifications/:id", notificationHandler.Dismiss)
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("❌ invalid LOG_LEVEL: %w", err)
	}
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	logger.SetLevel(lvl)
	if lvl < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		logrus.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	logrus.Info("✅ Server exited properly")
}
