package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"todo-tracker-api/internal/handler"
	"todo-tracker-api/internal/metrics"
	"todo-tracker-api/internal/middleware"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	BasePath    string
	Metrics     *metrics.Metrics
	Store       service.BlobStore
	CORSOrigins []string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "todo-tracker-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "todo-tracker-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "todo-tracker-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "todo-tracker-api"})
	})

	// Initialize repositories
	todoRepo := repository.NewTodoRepository(cfg.DB)
	changeRepo := repository.NewChangeRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	// Initialize services
	recorder := service.NewChangeRecorder(changeRepo, cfg.Logger)
	todoService := service.NewTodoService(todoRepo, changeRepo, recorder, cfg.Metrics, cfg.Logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, todoRepo, recorder, cfg.Store, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	todoHandler := handler.NewTodoHandler(todoService, cfg.Logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, cfg.Logger)

	// API routes group
	api := r.Group(cfg.BasePath)

	todos := api.Group("/todos")
	{
		todos.POST("", todoHandler.CreateTodo)
		todos.GET("", todoHandler.ListTodos)
		todos.POST("/reorder", todoHandler.ReorderTodos)
		todos.GET("/:id", todoHandler.GetTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
		todos.GET("/:id/changes", todoHandler.ListChanges)
		todos.GET("/:id/attachments", attachmentHandler.ListAttachments)
		todos.POST("/:id/attachments", attachmentHandler.UploadAttachment)
	}

	attachments := api.Group("/attachments")
	{
		attachments.GET("/todo/:todoId", attachmentHandler.ListAttachmentsForTodo)
		attachments.POST("/todo/:todoId", attachmentHandler.UploadAttachmentForTodo)
		attachments.GET("/:id", attachmentHandler.DownloadAttachment)
		attachments.GET("/:id/meta", attachmentHandler.GetAttachmentMetadata)
		attachments.DELETE("/:id", attachmentHandler.DeleteAttachment)
	}

	return r
}
