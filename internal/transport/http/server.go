package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/cache"
	"gopherblog/internal/platform/rabbitmq"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	accountRepo := repository.NewAccountRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	statsCache := cache.NewStatsCache(
		app.Redis,
		time.Duration(app.Config.Redis.StatsTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.StatsDirtyTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	sessionTTL := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute
	authService := appsvc.NewAuthService(accountRepo, app.Config.Auth.JWTSecret, sessionTTL)
	postService := appsvc.NewPostService(postRepo, activityPublisher, statsCache)
	statsService := appsvc.NewStatsService(postRepo, statsCache)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	postHandler := handler.NewPostHandler(postService)
	statsHandler := handler.NewStatsHandler(statsService)
	accountHandler := handler.NewAccountHandler(authService, postService, activityRepo)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", postHandler.List)
	router.GET("/post/:id", postHandler.Get)
	router.GET("/stats", statsHandler.Get)
	router.GET("/healthz", healthHandler.Check)

	router.StaticFile("/register", "web/register.html")
	router.POST("/register", authHandler.Register)
	router.StaticFile("/login", "web/login.html")
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	session := router.Group("")
	session.Use(middleware.SessionRequired(app.Config.Auth.JWTSecret))
	session.StaticFile("/create", "web/create.html")
	session.POST("/create", postHandler.Create)
	session.GET("/edit/:id", postHandler.EditForm)
	session.POST("/edit/:id", postHandler.Edit)
	session.POST("/delete/:id", postHandler.Delete)
	session.GET("/account", accountHandler.Show)
	session.POST("/account", accountHandler.Show)

	return router
}
