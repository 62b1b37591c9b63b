package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/config"
	"github.com/shopnest/ecommerce-api/gateway"
)

// SetupRoutes wires every route group onto the engine.
func SetupRoutes(r *gin.Engine, database *mongo.Database, cfg *config.Config, gw gateway.Gateway) {
	SetupAuthRoutes(r, database, cfg)
	SetupCategoryRoutes(r, database, cfg)
	SetupProductRoutes(r, database, cfg, gw)
}
