package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopnest/ecommerce-api/config"
	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/gateway"
	"github.com/shopnest/ecommerce-api/middleware"
	"github.com/shopnest/ecommerce-api/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to MongoDB
	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatal(err)
	}
	log.Printf("Connected to MongoDB, database %q", cfg.Mongo.DB)

	gw, err := gateway.NewBraintree(cfg.Braintree)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID(), middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupRoutes(r, database, cfg, gw)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
