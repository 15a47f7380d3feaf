package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/whitebrim/melanoscan-backend/internal/services"
	"github.com/whitebrim/melanoscan-backend/pkg/clientip"
)

// Chatbot rate limit: per-IP token bucket on top of the guest quota.
// Logged-in users get a larger budget than anonymous ones. This guards
// the Bedrock call from bursts; the guest quota itself is enforced by
// the gate in the handler.

const (
	chatbotAuthRPS      = 0.5 // 30/min
	chatbotAuthBurst    = 10
	chatbotAnonRPS      = 0.17 // ~10/min
	chatbotAnonBurst    = 5
	chatbotLimiterTTL   = 30 * time.Minute
	chatbotCleanupEvery = 5 * time.Minute
)

type chatbotLimiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	chatbotEntries   = make(map[string]*chatbotLimiterEntry)
	chatbotEntriesMu sync.Mutex
	chatbotCleanup   bool
)

func getChatbotLimiter(ip string, authenticated bool) *rate.Limiter {
	key := "anon:" + ip
	rps, burst := chatbotAnonRPS, chatbotAnonBurst
	if authenticated {
		key = "auth:" + ip
		rps, burst = chatbotAuthRPS, chatbotAuthBurst
	}

	chatbotEntriesMu.Lock()
	defer chatbotEntriesMu.Unlock()
	startChatbotCleanupOnce()

	e, ok := chatbotEntries[key]
	if !ok {
		e = &chatbotLimiterEntry{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
		chatbotEntries[key] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startChatbotCleanupOnce() {
	if chatbotCleanup {
		return
	}
	chatbotCleanup = true
	go func() {
		ticker := time.NewTicker(chatbotCleanupEvery)
		defer ticker.Stop()
		for range ticker.C {
			chatbotEntriesMu.Lock()
			now := time.Now()
			for k, e := range chatbotEntries {
				if now.Sub(e.lastUse) > chatbotLimiterTTL {
					delete(chatbotEntries, k)
				}
			}
			chatbotEntriesMu.Unlock()
		}
	}()
}

// ChatbotRateLimit throttles chatbot POSTs per client IP.
func ChatbotRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		sess := services.LoadSession(r.Context(), r)
		limiter := getChatbotLimiter(clientip.FromRequest(r), sess.Authenticated())
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many chatbot requests. Please slow down."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
