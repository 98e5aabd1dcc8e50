package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/config"
	"github.com/prperemyshlev/contact-book/internal/handler"
	"github.com/prperemyshlev/contact-book/internal/service"
	"github.com/prperemyshlev/contact-book/pkg/observability"
)

type routeHandlers struct {
	auth    *handler.AuthHandler
	user    *handler.UserHandler
	contact *handler.ContactHandler
	health  *HealthChecker
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h routeHandlers,
	authService service.AuthService,
	rateLimiter handler.RateLimiter,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", h.health.Handler)

	authLimit := handler.RateLimitMiddleware(rateLimiter,
		cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.RouteKey)
	apiLimit := handler.RateLimitMiddleware(rateLimiter,
		cfg.Security.APIRateLimitRequests, cfg.Security.APIRateLimitWindow.Duration, handler.RouteKey)
	requireUser := handler.AuthMiddleware(authService)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authLimit, h.auth.Signup)
			auth.POST("/login", authLimit, h.auth.Login)
			auth.GET("/refresh_token", authLimit, h.auth.RefreshToken)
			auth.GET("/confirmed_email/:token", h.auth.ConfirmEmail)
			auth.POST("/request_email", authLimit, h.auth.RequestEmail)
			auth.POST("/logout", requireUser, h.auth.Logout)
		}

		users := api.Group("/users", requireUser, apiLimit)
		{
			users.GET("/me", h.user.GetMe)
			users.PATCH("/avatar", h.user.UpdateAvatar)
			users.PATCH("/password", h.user.ChangePassword)
		}

		contacts := api.Group("/contacts", requireUser, apiLimit)
		{
			contacts.GET("", h.contact.List)
			contacts.GET("/name", h.contact.SearchByName)
			contacts.GET("/surname", h.contact.SearchBySurname)
			contacts.GET("/email", h.contact.SearchByEmail)
			contacts.GET("/birthday", h.contact.UpcomingBirthdays)
			contacts.GET("/:id", h.contact.Get)
			contacts.POST("", h.contact.Create)
			contacts.PUT("/:id", h.contact.Update)
			contacts.DELETE("/:id", h.contact.Delete)
		}
	}
}
