package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-account-service/internal/config"     // cache settings for the admin listing
	"github.com/iliyamo/user-account-service/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/user-account-service/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/user-account-service/internal/model"      // role names for the admin gate
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes under /api/auth.
// Register and login are open; logout requires a valid access token, and
// the admin registration path additionally requires the ADMIN role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	g.POST("/register-admin", a.RegisterAdmin, auth, admin)
	g.POST("/logout", a.Logout, auth)
}

// RegisterUsers registers the profile, admin CRUD, place-like and
// profile-picture routes under /api/users.  Every route in this group
// requires a valid access token; admin-only routes chain the role gate on
// top.  The user listing additionally sits behind the Redis response cache
// when a client is available.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, p *handler.PictureHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	auth := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	g := e.Group("/api/users", auth)

	// Static paths are registered before /:id so Echo resolves them first.
	g.GET("/profile", u.Profile)
	g.GET("/profile-picture", p.GetOwn)
	g.GET("/admin-only", u.AdminOnly, admin)

	g.GET("/place-likes", u.ListPlaceLikes)
	g.POST("/place-likes/:placeId", u.LikePlace)
	g.DELETE("/place-likes/:placeId", u.UnlikePlace)

	g.GET("", u.List, admin, middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/:id", u.Get, admin)
	g.PUT("/:id", u.Update, admin)
	g.DELETE("/:id", u.Delete, admin)

	// Self-or-admin checks happen inside the picture handlers.
	g.POST("/:id/profile-picture", p.Upload)
	g.PUT("/:id/profile-picture", p.Upload)
	g.DELETE("/:id/profile-picture", p.Delete)
}
