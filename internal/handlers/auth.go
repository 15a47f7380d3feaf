package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/whitebrim/melanoscan-backend/internal/services"
)

// Login renders the login form and handles submissions. A successful
// login establishes the session identity and redirects home; bad
// credentials re-show the same form with a flash message.
func Login(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)

	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		password := r.FormValue("password")

		user, err := services.AuthenticateUser(r.Context(), username, password)
		switch {
		case err == nil:
			sess.SetIdentity(user)
			sess.AddFlash("Logged in successfully!", "success")
			if err := sess.Save(r.Context(), w); err != nil {
				log.Printf("session save failed: %v", err)
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			sess.AddFlash("Invalid credentials!", "danger")
		default:
			log.Printf("login failed for %q: %v", username, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	renderPage(w, r, sess, "login.html", nil)
}

// Register renders the registration form and handles submissions.
// Duplicate email or username rejects the registration and redirects
// back to the form; success redirects to the login page.
func Register(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)

	if r.Method == http.MethodPost {
		email := r.FormValue("email")
		username := r.FormValue("username")
		password := r.FormValue("password")

		err := services.RegisterUser(r.Context(), email, username, password)
		switch {
		case err == nil:
			sess.AddFlash("Registration successful! Please login.", "success")
			if err := sess.Save(r.Context(), w); err != nil {
				log.Printf("session save failed: %v", err)
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		case errors.Is(err, services.ErrDuplicateEmail):
			sess.AddFlash("Email is already in use!", "danger")
		case errors.Is(err, services.ErrDuplicateUsername):
			sess.AddFlash("Username is already taken!", "danger")
		default:
			log.Printf("registration failed for %q: %v", username, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if err := sess.Save(r.Context(), w); err != nil {
			log.Printf("session save failed: %v", err)
		}
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	renderPage(w, r, sess, "register.html", nil)
}

// Logout clears all session state unconditionally and redirects home.
func Logout(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)
	sess.Destroy(r.Context(), w)

	fresh := &services.Session{Token: uuid.NewString()}
	fresh.AddFlash("Logged out successfully!", "success")
	if err := fresh.Save(r.Context(), w); err != nil {
		log.Printf("session save failed: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
