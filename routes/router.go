package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/controllers"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/services"
	"github.com/tamohar/foundationbackend/utils"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string // nil allows every origin
	TrustedProxies []string // nil makes the socket peer the client IP
	Ping           func(ctx context.Context) error

	Auth        *services.AuthService
	Content     *services.ContentService
	Submissions *services.SubmissionService
	Media       *services.MediaService // nil disables the media routes
	Uploads     *utils.MemoryStore     // served under /uploads when set

	FormLimiter *middleware.IPRateLimiter // nil disables rate limiting
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		slog.Error("invalid trusted proxies, ignoring forwarded headers", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	health := &controllers.HealthHandler{Service: dep.ServiceName, Version: dep.Version, Ping: dep.Ping}
	health.RegisterRoutes(r)

	limited := middleware.RateLimit(dep.FormLimiter)
	authed := middleware.AuthMiddleware(dep.Auth)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)

	// Public
	r.GET("/content", controllers.GetContent(dep.Content))
	r.GET("/content/:section", controllers.GetSection(dep.Content))
	r.POST("/auth/login", limited, controllers.Login(dep.Auth))
	r.POST("/contact", limited, controllers.CreateInquiry(dep.Submissions))
	r.POST("/volunteer", limited, controllers.CreateVolunteer(dep.Submissions))
	r.POST("/newsletter", limited, controllers.Subscribe(dep.Submissions))

	// Any signed-in account
	me := r.Group("/", authed)
	{
		me.GET("/auth/verify", controllers.Verify())
		me.POST("/auth/logout", controllers.Logout(dep.Auth))
		me.POST("/users/me/password", controllers.ChangeMyPassword(dep.Auth))
	}

	admin := r.Group("/", authed, staff)
	{
		admin.PUT("/content/:section", controllers.PutSection(dep.Content))

		admin.GET("/inquiries", controllers.ListInquiries(dep.Submissions))
		admin.PUT("/inquiries/:id", controllers.UpdateSubmissionStatus(dep.Submissions, models.KindInquiry))
		admin.DELETE("/inquiries/:id", controllers.DeleteSubmission(dep.Submissions, models.KindInquiry))

		admin.GET("/volunteers", controllers.ListVolunteers(dep.Submissions))
		admin.PUT("/volunteers/:id", controllers.UpdateSubmissionStatus(dep.Submissions, models.KindVolunteer))
		admin.DELETE("/volunteers/:id", controllers.DeleteSubmission(dep.Submissions, models.KindVolunteer))

		admin.GET("/newsletter", controllers.ListSubscribers(dep.Submissions))
		admin.DELETE("/newsletter/:id", controllers.DeleteSubscriber(dep.Submissions))

		if dep.Media != nil {
			admin.POST("/media", controllers.UploadMedia(dep.Media))
			admin.GET("/media", controllers.ListMedia(dep.Media))
			admin.DELETE("/media/:id", controllers.DeleteMedia(dep.Media))
		}
	}

	if dep.Uploads != nil {
		r.GET("/uploads/*object", controllers.ServeMemoryObject(dep.Uploads))
	}

	r.POST("/users", authed, middleware.RequireRole(models.RoleAdmin), controllers.CreateUser(dep.Auth))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, "If-None-Match"},
		ExposeHeaders: []string{"Content-Length", "ETag", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
