package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/elores-client/api/swagger"
	"github.com/noah-isme/elores-client/internal/handler"
	"github.com/noah-isme/elores-client/internal/middleware"
	"github.com/noah-isme/elores-client/pkg/config"
	"github.com/noah-isme/elores-client/pkg/logger"
	corsmiddleware "github.com/noah-isme/elores-client/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/elores-client/pkg/middleware/requestid"
)

// NewRouter builds the gateway routes.
func NewRouter(a *App) *gin.Engine {
	if a.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(a.Logger))
	r.Use(middleware.Metrics(a.Metrics))
	r.Use(corsmiddleware.New(a.Config.CORS.AllowedOrigins))

	metricsHandler := handler.NewMetricsHandler(a.Metrics, a.Auth, a.Client.Addr())
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if a.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(a.Auth, a.Tokens, a.Client.Welcome)
	scheduleHandler := handler.NewScheduleHandler(a.Schedule, a.Exports)
	meetingHandler := handler.NewMeetingHandler(a.Schedule, a.Meetings)
	studentHandler := handler.NewStudentHandler(a.Students)
	profileHandler := handler.NewProfileHandler(a.Profiles, a.Avatars)

	api := r.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(a.Tokens, a.Identity))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	secured.GET("/teachers", scheduleHandler.Teachers)
	secured.GET("/schedule", scheduleHandler.Entries)
	secured.GET("/schedule/grid", scheduleHandler.Grid)
	secured.GET("/schedule/grid/export", scheduleHandler.Export)

	secured.GET("/meetings", meetingHandler.List)
	secured.POST("/meetings", meetingHandler.Create)
	secured.PATCH("/meetings/:id/status", meetingHandler.UpdateStatus)
	secured.DELETE("/meetings/:id", meetingHandler.Delete)

	secured.GET("/students", studentHandler.List)
	secured.GET("/students/:id", studentHandler.Get)

	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile", profileHandler.Update)
	secured.PUT("/profile/password", profileHandler.ChangePassword)
	secured.GET("/profile/avatar", profileHandler.Avatar)

	return r
}
