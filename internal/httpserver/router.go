package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/session"
)

// Roles allowed into the admin views.
var adminRoles = []string{"ROLE_auxiliar", "auxiliar", "ROLE_admin", "admin"}

type Deps struct {
	Sessions *session.Store

	AuthHandler     *AuthHandler
	ProductsHandler *ProductsHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	AdminHandler    *AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/login", d.AuthHandler.Login)

	authed := api.Group("", RequireSession(d.Sessions))
	authed.POST("/auth/logout", d.AuthHandler.Logout)
	authed.GET("/auth/session", d.AuthHandler.Session)

	authed.GET("/products", d.ProductsHandler.Products)

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart/items", d.CartHandler.AddItem)
	authed.PUT("/cart/items", d.CartHandler.UpdateQuantity)
	authed.DELETE("/cart/items/:articleId", d.CartHandler.RemoveItem)
	authed.DELETE("/cart", d.CartHandler.Clear)

	authed.GET("/checkout", d.CheckoutHandler.Status)
	authed.POST("/checkout/begin", d.CheckoutHandler.Begin)
	authed.POST("/checkout/confirm", d.CheckoutHandler.Confirm)
	authed.POST("/checkout/dismiss", d.CheckoutHandler.Dismiss)

	admin := authed.Group("", RequireRole(adminRoles...))
	admin.GET("/availability", d.AdminHandler.Availability)
	admin.GET("/sales/daily", d.AdminHandler.DailySales)
}
