package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/config"
	authcontroller "github.com/shopnest/ecommerce-api/controllers/auth"
	"github.com/shopnest/ecommerce-api/middleware"
)

func SetupAuthRoutes(r *gin.Engine, database *mongo.Database, cfg *config.Config) {
	signIn := middleware.RequireSignIn(cfg.Auth)
	isAdmin := middleware.IsAdmin(database)

	g := r.Group("/api/v1/auth")
	{
		g.POST("/register", authcontroller.Register(database))
		g.POST("/login", authcontroller.Login(database, cfg.Auth))
		g.POST("/forgot-password", authcontroller.ForgotPassword(database))

		g.PUT("/profile", signIn, authcontroller.UpdateProfile(database))
		g.GET("/orders", signIn, authcontroller.GetOrders(database))

		g.GET("/user-auth", signIn, authcontroller.AuthCheck())
		g.GET("/admin-auth", signIn, isAdmin, authcontroller.AuthCheck())

		g.GET("/all-orders", signIn, isAdmin, authcontroller.GetAllOrders(database))
		g.PUT("/order-status/:orderId", signIn, isAdmin, authcontroller.OrderStatus(database))
	}
}
