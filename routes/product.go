package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/config"
	paymentcontroller "github.com/shopnest/ecommerce-api/controllers/payment"
	productcontroller "github.com/shopnest/ecommerce-api/controllers/product"
	"github.com/shopnest/ecommerce-api/gateway"
	"github.com/shopnest/ecommerce-api/middleware"
)

func SetupProductRoutes(r *gin.Engine, database *mongo.Database, cfg *config.Config, gw gateway.Gateway) {
	signIn := middleware.RequireSignIn(cfg.Auth)
	isAdmin := middleware.IsAdmin(database)

	g := r.Group("/api/v1/product")
	{
		g.POST("/create-product", signIn, isAdmin, productcontroller.CreateProduct(database))
		g.PUT("/update-product/:id", signIn, isAdmin, productcontroller.UpdateProduct(database))
		g.DELETE("/delete-product/:id", signIn, isAdmin, productcontroller.DeleteProduct(database))

		g.GET("/get-product", productcontroller.GetProducts(database))
		g.GET("/get-product/:slug", productcontroller.GetProduct(database))
		g.GET("/product-photo/:id", productcontroller.ProductPhoto(database))
		g.POST("/product-filters", productcontroller.ProductFilters(database))
		g.GET("/product-count", productcontroller.ProductCount(database))
		g.GET("/product-list/:page", productcontroller.ProductList(database))
		g.GET("/search/:keyword", productcontroller.SearchProducts(database))
		g.GET("/related-product/:pid/:cid", productcontroller.RelatedProducts(database))
		g.GET("/product-category/:slug", productcontroller.ProductsByCategory(database))

		// Payments
		g.GET("/braintree/token", paymentcontroller.BraintreeToken(gw))
		g.POST("/braintree/payment", signIn, paymentcontroller.BraintreePayment(database, gw))
	}
}
