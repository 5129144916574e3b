package http

import (
	"github.com/gin-gonic/gin"
	"github.com/psalazarh/libreria-backend/internal/adapter/config"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	saleHandler *SaleHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.RegisterUser)
			auth.POST("/login", userHandler.LoginUser)
		}

		users := api.Group("/users")
		{
			users.Use(authCheck(tokenService))
			users.POST("", roleCheck(domain.RoleAdmin), userHandler.CreateUser)
		}

		products := api.Group("/products")
		{
			products.Use(authCheck(tokenService))
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", roleCheck(domain.RoleAdmin, domain.RoleEmployee), productHandler.CreateProduct)
		}

		sales := api.Group("/sales")
		{
			sales.Use(authCheck(tokenService))
			sales.GET("", saleHandler.ListSales)
			sales.GET("/statistics", roleCheck(domain.RoleAdmin, domain.RoleEmployee), saleHandler.GetStatistics)
			sales.GET("/:id", saleHandler.GetSale)
			sales.POST("", saleHandler.CreateSale)
			sales.PATCH("/:id/status", roleCheck(domain.RoleAdmin, domain.RoleEmployee), saleHandler.UpdateSaleStatus)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
