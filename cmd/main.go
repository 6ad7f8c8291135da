package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nyayadhaar/backend/internal/api/handler"
	"nyayadhaar/backend/internal/assistant"
	"nyayadhaar/backend/internal/config"
	"nyayadhaar/backend/internal/dashboard"
	"nyayadhaar/backend/internal/localization"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Victim{},
		&models.Case{},
		&models.Disbursement{},
		&models.Grievance{},
		&models.ChatExchange{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting NYAY ADHAAR backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	locale, err := localization.NewProvider(cfg.LocalesDir)
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	resolver := scope.NewResolver(store)
	trackerSvc := tracker.NewService(store, resolver)
	dashboardSvc := dashboard.NewService(store, resolver)
	assistantSvc := assistant.NewService(store)

	h := handler.NewHandler(store, trackerSvc, dashboardSvc, assistantSvc, locale, []byte(cfg.JWTSecret))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:5173", "http://localhost:4200"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api", h.RequireAuth())
	{
		api.GET("/cases", h.ListCases)
		api.POST("/cases", h.RegisterCase)
		api.GET("/disbursements", h.ListDisbursements)
		api.POST("/disbursements", h.SanctionDisbursement)
		api.GET("/grievances", h.ListGrievances)
		api.POST("/grievances", h.SubmitGrievance)
		api.POST("/transitions", h.RequestTransition)
		api.GET("/dashboard", h.DashboardStats)
		api.GET("/labels", h.Labels)
		api.POST("/victims", h.CreateVictim)
		api.POST("/victims/:id/verify", h.VerifyVictim)
		api.GET("/victims/me", h.MyVictim)
		api.POST("/chat/session", h.NewChatSession)
		api.POST("/chat", h.Chat)
	}

	// Websocket upgrades carry the token as a query parameter.
	r.GET("/ws/chat", h.ServeChatSocket)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
