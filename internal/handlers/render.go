package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/whitebrim/melanoscan-backend/internal/services"
)

var templates *template.Template

// InitTemplates parses all page templates from dir. Called once at startup.
func InitTemplates(dir string) error {
	parsed, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	templates = parsed
	return nil
}

// pageData is the data every page template receives, plus the
// page-specific fields used by the detection and chatbot views.
type pageData struct {
	LoggedIn bool
	Username string
	Email    string
	Flashes  []services.Flash

	ModalOpen        bool
	GuestUploads     int64
	UploadedImage    string
	UploadedImageURL string
}

// renderPage fills the shared fields from the session, pops its flash
// messages, persists it and executes the named template.
func renderPage(w http.ResponseWriter, r *http.Request, sess *services.Session, name string, data *pageData) {
	if data == nil {
		data = &pageData{}
	}
	data.LoggedIn = sess.Authenticated()
	if data.Username == "" {
		data.Username = sess.Username
	}
	if data.Email == "" {
		data.Email = sess.Email
	}
	data.Flashes = sess.PopFlashes()

	if err := sess.Save(r.Context(), w); err != nil {
		log.Printf("session save failed: %v", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s failed: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("json encode failed: %v", err)
	}
}
