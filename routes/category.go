package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/config"
	categorycontroller "github.com/shopnest/ecommerce-api/controllers/category"
	"github.com/shopnest/ecommerce-api/middleware"
)

func SetupCategoryRoutes(r *gin.Engine, database *mongo.Database, cfg *config.Config) {
	signIn := middleware.RequireSignIn(cfg.Auth)
	isAdmin := middleware.IsAdmin(database)

	g := r.Group("/api/v1/category")
	{
		g.POST("/create-category", signIn, isAdmin, categorycontroller.CreateCategory(database))
		g.PUT("/update-category/:id", signIn, isAdmin, categorycontroller.UpdateCategory(database))
		g.DELETE("/delete-category/:id", signIn, isAdmin, categorycontroller.DeleteCategory(database))

		g.GET("/get-category", categorycontroller.GetCategories(database))
		g.GET("/get-one-category/:slug", categorycontroller.GetCategory(database))
	}
}
