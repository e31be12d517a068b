package main

import (
	"context"
	"log"

	"shop-analytics/internal/config"
	"shop-analytics/internal/routes"
	"shop-analytics/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	var (
		ds  *store.Store
		err error
	)
	if cfg.MongoURI != "" {
		ds, err = store.LoadMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	} else {
		ds, err = store.LoadFile(cfg.SeedFile)
	}
	if err != nil {
		log.Fatalln("could not load dataset:", err)
	}
	log.Printf("dataset loaded: %d users, %d products, %d categories, %d orders, %d reviews",
		len(ds.Users()), len(ds.Products()), len(ds.Categories()), len(ds.Orders()), len(ds.Reviews()))

	router := gin.Default()
	routes.RegisterRoutes(router, ds)

	log.Println("🚀 Server running on port", cfg.Port)
	router.Run(":" + cfg.Port)
}
