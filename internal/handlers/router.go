package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/logging"
	"inspection-report/internal/middleware"
	"inspection-report/internal/realtime"
	"inspection-report/internal/services"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Submissions *services.SubmissionService
	Auth        *services.AuthService
	Hub         *realtime.Hub
	JWTSecret   string
	Logger      *zap.Logger
}

// NewRouter builds the engine with every route. Callers may add more, such
// as static blob serving, before running it.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinLogger(d.Logger))
	router.Use(gin.Recovery())

	execHandler := NewExecHandler(d.Submissions, d.Auth, d.Logger)
	recordsHandler := NewRecordsHandler(d.Submissions, d.Logger)
	authHandler := NewAuthHandler(d.Auth, d.Logger)

	// Health check and the form client's endpoint (no auth)
	router.GET("/health", HealthHandler)
	router.GET("/exec", execHandler.Get)
	router.POST("/exec", execHandler.Post)

	if d.Hub != nil {
		router.GET("/ws", NewRealtimeHandler(d.Hub, d.Logger).Subscribe)
	}

	api := router.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.POST("/records", recordsHandler.CreateRecord)
	api.GET("/records", recordsHandler.ListRecords)
	api.GET("/records/export.xlsx", recordsHandler.ExportRecords)
	api.GET("/records/:row_id", recordsHandler.GetRecord)
	api.GET("/records/:row_id/print", recordsHandler.PrintRecord)
	api.DELETE("/records/:row_id", recordsHandler.DeleteRecord)

	me := api.Group("/me")
	me.Use(middleware.AuthMiddleware(d.JWTSecret))
	me.GET("/records", recordsHandler.MyRecords)

	return router
}
