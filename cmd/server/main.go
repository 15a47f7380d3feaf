package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/whitebrim/melanoscan-backend/internal/config"
	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/internal/handlers"
	"github.com/whitebrim/melanoscan-backend/internal/middleware"
	"github.com/whitebrim/melanoscan-backend/internal/routes"
	"github.com/whitebrim/melanoscan-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (accounts)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions, rate limiting)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (guest usage ledger, upload records)
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	services.Sessions = services.NewRedisSessionStore()
	services.Quota = services.NewGate(services.NewMongoUsageLedger())

	// Image store: Cloudinary when configured, local disk otherwise
	var imageStore services.ImageStore
	if cfg.UseCloudinary() {
		store, err := services.NewCloudinaryImageStore(
			cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary:", err)
		}
		imageStore = store
		log.Println("✅ Cloudinary image store initialized")
	} else {
		store, err := services.NewDiskImageStore(cfg.UploadFolder, "/static/uploads")
		if err != nil {
			log.Fatal("Failed to create upload folder:", err)
		}
		imageStore = store
		log.Printf("✅ Disk image store at %s", cfg.UploadFolder)
	}
	handlers.InitDetection(imageStore, services.NewMongoUploadStore())

	// Chatbot: canned dataset is required, Bedrock is optional
	canned, err := services.LoadCannedResponses(cfg.ChatbotDataPath)
	if err != nil {
		log.Fatal("Failed to load chatbot data:", err)
	}
	var completer services.Completer
	bedrock, err := services.NewBedrockCompleter(cfg.AWSRegion, cfg.BedrockModelID)
	if err != nil {
		log.Printf("Warning: Bedrock unavailable: %v", err)
		log.Println("Chatbot messages will get the fallback response")
	} else {
		completer = bedrock
		log.Printf("✅ Bedrock completer ready (%s)", cfg.BedrockModelID)
	}
	handlers.InitChatbot(completer, canned)

	if err := handlers.InitTemplates(cfg.TemplatesDir); err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		log.Println("✅ Production security headers enabled")
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg.UploadFolder)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  GET/POST /login /register")
	log.Println("  GET  /logout")
	log.Println("  GET/POST /detection")
	log.Println("  GET  /detection/result")
	log.Println("  DELETE /delete-image/{filename}")
	log.Println("  GET/POST /chatbot")
	log.Println("  GET  /get_response/{message}")
	log.Println("  GET  / /about /contact")

	log.Printf("🚀 Melanoma scan backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
