package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/internal/models"
)

const (
	// SessionCookieName is the browser cookie carrying the session token.
	SessionCookieName = "melanoscan_session"
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// sessionKeyPrefix is the Redis key prefix for sessions.
	sessionKeyPrefix = "session:"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"` // success, danger, warning
}

// Session is the per-browser state. The identity fields are set on
// login and cleared on logout; UploadedImage tracks the last uploaded
// file for the detection result page.
type Session struct {
	Token string `json:"-"`

	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`

	UploadedImage    string  `json:"uploaded_image,omitempty"`
	UploadedImageURL string  `json:"uploaded_image_url,omitempty"`
	Flashes          []Flash `json:"flashes,omitempty"`
}

// Authenticated reports whether a prior successful login set an identity.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// SetIdentity establishes the authenticated identity after login and
// clears the guest upload marker. The global guest counters are not
// touched; they are shared by all guests, not owned by this session.
func (s *Session) SetIdentity(u *models.User) {
	s.UserID = u.ID.String()
	s.Username = u.Username
	s.Email = u.Email
	s.UploadedImage = ""
	s.UploadedImageURL = ""
}

// AddFlash queues a one-shot message.
func (s *Session) AddFlash(message, category string) {
	s.Flashes = append(s.Flashes, Flash{Message: message, Category: category})
}

// PopFlashes returns queued messages and empties the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// SessionStore persists sessions keyed by token.
type SessionStore interface {
	Load(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
}

// Sessions is the active session store, set at startup.
var Sessions SessionStore

// LoadSession resolves the request's session from its cookie. A missing,
// expired or unreadable session yields a fresh anonymous one.
func LoadSession(ctx context.Context, r *http.Request) *Session {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		s, err := Sessions.Load(ctx, c.Value)
		if err != nil {
			log.Printf("session load failed: %v", err)
		}
		if s != nil {
			s.Token = c.Value
			return s
		}
	}
	return &Session{Token: uuid.NewString()}
}

// Save persists the session and refreshes the cookie.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if err := Sessions.Save(ctx, s); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy removes the session from the store and expires the cookie.
func (s *Session) Destroy(ctx context.Context, w http.ResponseWriter) {
	if err := Sessions.Delete(ctx, s.Token); err != nil {
		log.Printf("session delete failed: %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RedisSessionStore stores sessions as JSON in Redis with a 7-day TTL.
type RedisSessionStore struct{}

func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{}
}

func (RedisSessionStore) Load(ctx context.Context, token string) (*Session, error) {
	raw, err := database.RedisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (RedisSessionStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(ctx, sessionKeyPrefix+s.Token, raw, SessionDuration).Err()
}

func (RedisSessionStore) Delete(ctx context.Context, token string) error {
	return database.RedisClient.Del(ctx, sessionKeyPrefix+token).Err()
}
