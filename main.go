package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/configs"
	"github.com/gokulkolipaka/graviti-ticketing-v2/middlewares"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/routes"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
	"github.com/gokulkolipaka/graviti-ticketing-v2/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedSettings(); err != nil {
		log.Fatalf("seed settings failed: %v", err)
	}

	// Live-session hub + notifier worker
	hub := ws.NewEventHub()
	go hub.Run()

	mailer := services.NewMailer(repository.NewSettingsRepository(db), cfg.BaseURL)
	notifier := services.NewNotifier(hub, mailer)
	go notifier.Run()

	// HTTP
	r := gin.Default()

	// ✅ Enable CORS
	r.Use(middlewares.CORSMiddleware())

	// ✅ Serve uploaded files (ไฟล์แนบของ ticket)
	r.Static("/uploads", "./"+cfg.UploadDir)

	// ✅ Register API routes
	routes.RegisterRoutes(r, db, cfg, hub, notifier)

	// ✅ Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
