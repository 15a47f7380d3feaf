package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/whitebrim/melanoscan-backend/internal/services"
)

var (
	imageStore     services.ImageStore
	uploadRecorder services.UploadRecorder
)

// InitDetection wires the image store and upload record store.
func InitDetection(store services.ImageStore, recorder services.UploadRecorder) {
	imageStore = store
	uploadRecorder = recorder
}

type deleteImageResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Detection renders the upload page and handles image submissions.
// Guests past the shared upload quota are not rejected: the page is
// re-rendered with the login modal open and no file is accepted.
func Detection(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)
	actor := services.Classify(sess)

	allowed, guestUploads, err := services.Quota.CheckUploadQuota(r.Context(), actor)
	if err != nil {
		log.Printf("upload quota check failed: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := &pageData{GuestUploads: guestUploads}

	if r.Method == http.MethodPost {
		if !allowed {
			sess.AddFlash("Please login or register to upload more images.", "warning")
			data.ModalOpen = true
			renderPage(w, r, sess, "detection.html", data)
			return
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()

			filename := services.SanitizeFilename(header.Filename)
			url, err := imageStore.Save(r.Context(), file, filename)
			if err != nil {
				log.Printf("image save failed: %v", err)
				http.Error(w, "Failed to save image", http.StatusInternalServerError)
				return
			}

			if err := uploadRecorder.Record(r.Context(), actor.UserID, filename); err != nil {
				log.Printf("upload record insert failed: %v", err)
			}

			sess.UploadedImage = filename
			sess.UploadedImageURL = url

			if err := services.Quota.RecordGuestUpload(r.Context(), actor); err != nil {
				log.Printf("guest upload increment failed: %v", err)
			}

			sess.AddFlash("Image uploaded successfully!", "success")
			if err := sess.Save(r.Context(), w); err != nil {
				log.Printf("session save failed: %v", err)
			}
			http.Redirect(w, r, "/detection/result", http.StatusFound)
			return
		}
	}

	renderPage(w, r, sess, "detection.html", data)
}

// DetectionResult shows the last uploaded image from the session, or
// redirects back to the upload page with a warning when there is none.
func DetectionResult(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)

	if sess.UploadedImage == "" {
		sess.AddFlash("No image uploaded!", "danger")
		if err := sess.Save(r.Context(), w); err != nil {
			log.Printf("session save failed: %v", err)
		}
		http.Redirect(w, r, "/detection", http.StatusFound)
		return
	}

	renderPage(w, r, sess, "detection_result.html", &pageData{
		UploadedImage:    sess.UploadedImage,
		UploadedImageURL: sess.UploadedImageURL,
	})
}

// DeleteImage deletes a stored image by filename. The corresponding
// upload record is kept, and no ownership check is performed against
// the requesting session.
func DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := services.SanitizeFilename(chi.URLParam(r, "filename"))

	exists, err := imageStore.Exists(r.Context(), filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, deleteImageResponse{Success: false, Message: err.Error()})
		return
	}
	if !exists {
		writeJSON(w, http.StatusNotFound, deleteImageResponse{Success: false, Message: "File not found"})
		return
	}

	if err := imageStore.Remove(r.Context(), filename); err != nil {
		writeJSON(w, http.StatusInternalServerError, deleteImageResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, deleteImageResponse{Success: true, RedirectURL: "/detection"})
}
