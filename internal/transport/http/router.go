package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/transport/http/handler"
	"github.com/mpartaud/school-records/internal/transport/http/middleware"
	sloggin "github.com/samber/slog-gin"
)

// NewRouter wires the operation-call API. Query operations are GETs named
// after the operation; mutations are POSTs. The identity token travels in
// the "token" header.
func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	classHandler *handler.ClassHandler,
	gradeHandler *handler.GradeHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	// Queries
	api.GET("/User", userHandler.List)
	api.GET("/UserID", userHandler.GetByID)
	api.GET("/Class", classHandler.List)
	api.GET("/ClassID", classHandler.GetByID)
	api.GET("/Grade", gradeHandler.List)
	api.GET("/GradeID", gradeHandler.GetByID)

	// Mutations
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	api.POST("/createUser", userHandler.Create)
	api.POST("/updateUser", userHandler.Update)
	api.POST("/deleteUser", userHandler.Delete)

	api.POST("/createClass", classHandler.Create)
	api.POST("/updateClass", classHandler.Update)
	api.POST("/deleteClass", classHandler.Delete)

	api.POST("/createGrade", gradeHandler.Create)
	api.POST("/updateGrade", gradeHandler.Update)
	api.POST("/deleteGrade", gradeHandler.Delete)

	return r
}
