package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/whitebrim/melanoscan-backend/internal/handlers"
	"github.com/whitebrim/melanoscan-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, uploadDir string) {
	// Informational pages
	r.Get("/", handlers.Index)
	r.Get("/about", handlers.About)
	r.Get("/contact", handlers.Contact)

	// Auth
	r.Get("/login", handlers.Login)
	r.Post("/login", handlers.Login)
	r.Get("/register", handlers.Register)
	r.Post("/register", handlers.Register)
	r.Get("/logout", handlers.Logout)

	// Detection (upload + result + delete)
	r.Get("/detection", handlers.Detection)
	r.Post("/detection", handlers.Detection)
	r.Get("/detection/result", handlers.DetectionResult)
	r.Delete("/delete-image/{filename}", handlers.DeleteImage)

	// Chatbot
	r.Get("/chatbot", handlers.Chatbot)
	r.With(middleware.ChatbotRateLimit).Post("/chatbot", handlers.Chatbot)
	r.Get("/get_response/{message}", handlers.GetResponse)

	// Uploaded images (disk store)
	r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(uploadDir))))
}
