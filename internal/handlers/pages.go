package handlers

import (
	"net/http"

	"github.com/whitebrim/melanoscan-backend/internal/services"
)

// Index renders the landing page. Anonymous visitors are shown as
// "Pengunjung".
func Index(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)

	data := &pageData{Username: sess.Username, Email: sess.Email}
	if !sess.Authenticated() {
		data.Username = "Pengunjung"
		data.Email = "Pengunjung"
	}
	renderPage(w, r, sess, "index.html", data)
}

// About renders the about page.
func About(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)
	renderPage(w, r, sess, "about.html", nil)
}

// Contact renders the contact page.
func Contact(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)
	renderPage(w, r, sess, "contact.html", nil)
}
