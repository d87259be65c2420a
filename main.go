package main

import (
	"fmt"
	"log"

	"safra-backend/configs"
	"safra-backend/middlewares"
	"safra-backend/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// HTTP
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())

	// Serve uploaded harvest images
	r.Static("/uploads", "./"+cfg.UploadRoot)

	routes.RegisterRoutes(r, db, cfg)

	port := cfg.Port
	fmt.Println("listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
