package router

import (
	"github.com/gin-gonic/gin"
	"github.com/qrmenu/backend/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	MenuItem *handler.MenuItemHandler
	Public   *handler.PublicHandler
	QR       *handler.QRHandler
	Health   *handler.HealthHandler
}

// Guards holds the middleware that protects routes
type Guards struct {
	// Authenticated must reject requests without a valid, unrevoked token
	Authenticated []gin.HandlerFunc
	// LoginLimiter throttles login attempts; nil disables it
	LoginLimiter gin.HandlerFunc
}

// protect prefixes a single route's handler with the authentication chain
func (g Guards) protect(h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(g.Authenticated)+1)
	chain = append(chain, g.Authenticated...)
	return append(chain, h)
}

// MenuRoutes builds the route groups of the QR menu API.
// Admin groups run the Authenticated chain; public groups run none.
func MenuRoutes(h Handlers, g Guards) []RouteRegistrar {
	authRoutes := NewDomainGroup("auth", "/auth")
	login := []gin.HandlerFunc{h.Auth.Login}
	if g.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{g.LoginLimiter}, login...)
	}
	authRoutes.POST("/login", login...)
	authRoutes.POST("/logout", g.protect(h.Auth.Logout)...)
	authRoutes.GET("/me", g.protect(h.Auth.Me)...)

	categoryRoutes := NewDomainGroup("categories", "/categories").Use(g.Authenticated...)
	categoryRoutes.GET("", h.Category.List)
	categoryRoutes.POST("", h.Category.Create)
	categoryRoutes.GET("/:id", h.Category.Get)
	categoryRoutes.PUT("/:id", h.Category.Update)
	categoryRoutes.DELETE("/:id", h.Category.Delete)

	menuItemRoutes := NewDomainGroup("menu-items", "/menu-items").Use(g.Authenticated...)
	menuItemRoutes.GET("", h.MenuItem.List)
	menuItemRoutes.POST("", h.MenuItem.Create)
	menuItemRoutes.GET("/:id", h.MenuItem.Get)
	menuItemRoutes.PUT("/:id", h.MenuItem.Update)
	menuItemRoutes.DELETE("/:id", h.MenuItem.Delete)

	publicRoutes := NewDomainGroup("public", "/public")
	publicRoutes.GET("", h.Public.Liveness)
	publicRoutes.GET("/demo", h.Public.Demo)
	publicRoutes.GET("/menu/:slug", h.Public.GetMenu)
	publicRoutes.GET("/menu/:slug/category/:id", h.Public.GetCategory)

	qrRoutes := NewDomainGroup("qr", "/qr").Use(g.Authenticated...)
	qrRoutes.GET("/generate", h.QR.Generate)
	qrRoutes.GET("/poster", h.QR.Poster)

	healthRoutes := NewDomainGroup("health", "")
	healthRoutes.GET("/check", h.Health.Check)
	healthRoutes.GET("/status", h.Health.Check)

	return []RouteRegistrar{authRoutes, categoryRoutes, menuItemRoutes, publicRoutes, qrRoutes, healthRoutes}
}
