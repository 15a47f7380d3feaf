package services

import (
	"context"
)

const (
	// GuestUploadLimit is the number of uploads shared by all guests.
	GuestUploadLimit = 3
	// GuestChatbotLimit is the number of chatbot calls shared by all guests.
	GuestChatbotLimit = 3
)

// Actor is the classified identity behind a request: either a guest or
// an authenticated user.
type Actor struct {
	Authenticated bool
	UserID        string
	Username      string
	Email         string
}

// Classify resolves the current actor from the session. A session is
// authenticated iff a prior successful login set an identity on it.
func Classify(s *Session) Actor {
	if s.Authenticated() {
		return Actor{
			Authenticated: true,
			UserID:        s.UserID,
			Username:      s.Username,
			Email:         s.Email,
		}
	}
	return Actor{}
}

// Gate enforces the guest quotas against the shared usage ledger.
// Authenticated users always pass.
type Gate struct {
	ledger UsageLedger
}

// Quota is the active gate, set at startup.
var Quota *Gate

func NewGate(ledger UsageLedger) *Gate {
	return &Gate{ledger: ledger}
}

// CheckUploadQuota reports whether the actor may upload, along with the
// current global guest upload count. Callers that get a deny must
// re-render the upload page with a login prompt, not reject the request.
func (g *Gate) CheckUploadQuota(ctx context.Context, actor Actor) (bool, int64, error) {
	usage, err := g.ledger.Current(ctx)
	if err != nil {
		return false, 0, err
	}
	if actor.Authenticated {
		return true, usage.Uploads, nil
	}
	return usage.Uploads < GuestUploadLimit, usage.Uploads, nil
}

// CheckChatbotQuota reports whether the actor may call the chatbot.
// Unlike the upload path, a deny here is surfaced as a hard 403 error.
func (g *Gate) CheckChatbotQuota(ctx context.Context, actor Actor) (bool, int64, error) {
	usage, err := g.ledger.Current(ctx)
	if err != nil {
		return false, 0, err
	}
	if actor.Authenticated {
		return true, usage.ChatbotInteractions, nil
	}
	return usage.ChatbotInteractions < GuestChatbotLimit, usage.ChatbotInteractions, nil
}

// RecordGuestUpload adds one upload to the shared guest ledger. No-op
// for authenticated actors. Call only after the quota check passed.
func (g *Gate) RecordGuestUpload(ctx context.Context, actor Actor) error {
	if actor.Authenticated {
		return nil
	}
	return g.ledger.IncrementUploads(ctx)
}

// RecordGuestChatbotInteraction adds one chatbot call to the shared
// guest ledger. No-op for authenticated actors.
func (g *Gate) RecordGuestChatbotInteraction(ctx context.Context, actor Actor) error {
	if actor.Authenticated {
		return nil
	}
	return g.ledger.IncrementChatbotInteractions(ctx)
}
