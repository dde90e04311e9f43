package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/handlers"
	"github.com/mkostrikov/marketplace/internal/middleware/auth"
)

type Deps struct {
	DB                 *gorm.DB
	AuthHandler        *handlers.AuthHandler
	CategoryHandler    *handlers.CategoryHandler
	ProductHandler     *handlers.ProductHandler
	FavoriteHandler    *handlers.FavoriteHandler
	CartHandler        *handlers.CartHandler
	OrderHandler       *handlers.OrderHandler
	ApplicationHandler *handlers.ApplicationHandler
	TokenService       *auth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.LogOut)
	api.GET("/auth/user", d.AuthHandler.CurrentUser, d.TokenService.RequireUser)

	api.GET("/categories", d.CategoryHandler.GetCategories)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/recommended", d.ProductHandler.GetRecommendedProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, d.TokenService.RequireSeller)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, d.TokenService.RequireSeller)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, d.TokenService.RequireSeller)

	favorites := api.Group("/favorites", d.TokenService.RequireUser)
	favorites.GET("", d.FavoriteHandler.GetFavorites)
	favorites.POST("", d.FavoriteHandler.AddFavorite)
	favorites.DELETE("/:productId", d.FavoriteHandler.RemoveFavorite)

	cart := api.Group("/cart", d.TokenService.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := api.Group("/orders", d.TokenService.RequireUser)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateOrderStatus)

	seller := api.Group("/seller", d.TokenService.RequireSeller)
	seller.GET("/orders", d.OrderHandler.GetSellerOrders)

	api.POST("/seller-applications", d.ApplicationHandler.Submit, d.TokenService.RequireUser)
	api.GET("/seller-applications/me", d.ApplicationHandler.MyApplication, d.TokenService.RequireUser)

	admin := api.Group("/admin", d.TokenService.RequireAdmin)
	admin.GET("/applications", d.ApplicationHandler.ListAll)
	admin.PATCH("/applications/:id", d.ApplicationHandler.Decide)
	admin.POST("/categories", d.CategoryHandler.CreateCategory)
}
