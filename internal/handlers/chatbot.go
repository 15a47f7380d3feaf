package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/whitebrim/melanoscan-backend/internal/services"
)

// chatbotFallback is returned when the Bedrock call fails for any
// reason. The underlying error is logged, never surfaced.
const chatbotFallback = "There was an error connecting to the AI model. Please try again later."

// chatbotQuotaMessage is the hard 403 body for guests past the quota.
const chatbotQuotaMessage = "You have reached the usage limit for the Chatbot. Please log in or register to continue."

// completeTimeout bounds the Bedrock call so one slow request cannot
// hold its handler forever.
const completeTimeout = 30 * time.Second

var (
	chatCompleter services.Completer
	canned        *services.CannedResponses
)

// InitChatbot wires the completion collaborator and the canned dataset.
// completer may be nil when Bedrock is unavailable; every message then
// gets the fallback string.
func InitChatbot(completer services.Completer, responses *services.CannedResponses) {
	chatCompleter = completer
	canned = responses
}

type chatbotResponse struct {
	Response string `json:"response"`
}

type chatbotError struct {
	Error string `json:"error"`
}

// Chatbot renders the chatbot page and answers posted messages.
// Guests past the interaction quota get a hard 403 before any model
// call is made — unlike the upload path, which soft-prompts for login.
func Chatbot(w http.ResponseWriter, r *http.Request) {
	sess := services.LoadSession(r.Context(), r)
	actor := services.Classify(sess)

	if r.Method == http.MethodPost {
		allowed, _, err := services.Quota.CheckChatbotQuota(r.Context(), actor)
		if err != nil {
			log.Printf("chatbot quota check failed: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			writeJSON(w, http.StatusForbidden, chatbotError{Error: chatbotQuotaMessage})
			return
		}

		message := strings.TrimSpace(r.FormValue("message"))
		if message != "" {
			reply := complete(r.Context(), message)

			if err := services.Quota.RecordGuestChatbotInteraction(r.Context(), actor); err != nil {
				log.Printf("guest chatbot increment failed: %v", err)
			}

			writeJSON(w, http.StatusOK, chatbotResponse{Response: reply})
			return
		}
	}

	renderPage(w, r, sess, "chatbot.html", nil)
}

func complete(ctx context.Context, message string) string {
	if chatCompleter == nil {
		log.Printf("chatbot completer not configured")
		return chatbotFallback
	}

	ctx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	reply, err := chatCompleter.Complete(ctx, message)
	if err != nil {
		log.Printf("chatbot completion failed: %v", err)
		return chatbotFallback
	}
	return reply
}

// GetResponse answers from the canned dataset only. Independent of the
// quota gate and of Bedrock.
func GetResponse(w http.ResponseWriter, r *http.Request) {
	message := chi.URLParam(r, "message")
	writeJSON(w, http.StatusOK, chatbotResponse{Response: canned.Lookup(message)})
}
