// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"maison/internal/delivery/http/middleware"
	"maison/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CartHandler     *handler.CartHandler
	CatalogHandler  *handler.CatalogHandler
	WishlistHandler *handler.WishlistHandler
	CheckoutHandler *handler.CheckoutHandler
	AccountHandler  *handler.AccountHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	catalogHandler  *handler.CatalogHandler
	wishlistHandler *handler.WishlistHandler
	checkoutHandler *handler.CheckoutHandler
	accountHandler  *handler.AccountHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		cartHandler:     params.CartHandler,
		catalogHandler:  params.CatalogHandler,
		wishlistHandler: params.WishlistHandler,
		checkoutHandler: params.CheckoutHandler,
		accountHandler:  params.AccountHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Every route resolves the caller's identity; guests fall back to the
	// shared guest namespace.
	e.Use(r.authMiddleware.Identify)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/provider", r.authHandler.SignInWithProvider)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.RequireUser)
	}

	// Catalog routes, public
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.catalogHandler.ListProducts)
		productGroup.GET("/featured", r.catalogHandler.FeaturedProducts)
		productGroup.GET("/:id", r.catalogHandler.GetProduct)
	}

	// Cart routes, usable both as guest and signed in
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.Clear)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:id", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.GET("/shipping", r.cartHandler.ShippingOptions)
		cartGroup.PUT("/shipping", r.cartHandler.SelectShipping)
		cartGroup.POST("/promo", r.cartHandler.ApplyPromoCode)
		cartGroup.DELETE("/promo", r.cartHandler.RemovePromoCode)
	}

	// Wishlist routes; mutations reject guests inside the usecase with a
	// sign-in prompt, reads are safe for everyone
	wishlistGroup := e.Group("/wishlist")
	{
		wishlistGroup.GET("", r.wishlistHandler.GetWishlist)
		wishlistGroup.POST("/toggle", r.wishlistHandler.Toggle)
		wishlistGroup.GET("/:id", r.wishlistHandler.Contains)
	}

	// Checkout routes that require authentication
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.RequireUser)
	{
		checkoutGroup.POST("", r.checkoutHandler.BeginCheckout)
		checkoutGroup.GET("/qr", r.checkoutHandler.SessionQR)
	}

	// Account routes that require authentication
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.RequireUser)
	{
		accountGroup.GET("/addresses", r.accountHandler.ListAddresses)
		accountGroup.POST("/addresses", r.accountHandler.AddAddress)
		accountGroup.PUT("/addresses/:id", r.accountHandler.UpdateAddress)
		accountGroup.DELETE("/addresses/:id", r.accountHandler.DeleteAddress)
		accountGroup.GET("/orders", r.accountHandler.ListOrders)
		accountGroup.PUT("/profile", r.accountHandler.UpdateProfile)
	}
}
