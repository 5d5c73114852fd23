package moderation

import (
	"fmt"
	"time"

	"github.com/agrilink/backend/internal/models"
)

type DenialKind string

const (
	DenialPermanent DenialKind = "permanent"
	DenialTemporary DenialKind = "temporary"
)

// Decision is the access gate's answer for a content-mutating request.
type Decision struct {
	Allowed       bool       `json:"allowed"`
	Kind          DenialKind `json:"kind,omitempty"`
	Detail        string     `json:"detail,omitempty"`
	DaysRemaining int        `json:"days_remaining,omitempty"`
	// Cleared reports that an expired temporary block was removed from the
	// returned state; the caller must persist it before serving the request.
	Cleared bool `json:"-"`
}

// CheckAccess decides whether a user may perform a content-mutating action.
// An expired temporary block is cleared lazily here, exactly once: the
// returned state has the field removed and Cleared set so the caller saves it.
// Read-only routes skip the gate entirely.
func CheckAccess(state models.ModerationState, now time.Time) (models.ModerationState, Decision) {
	if state.PermanentlyBlocked {
		return state, Decision{
			Allowed: false,
			Kind:    DenialPermanent,
			Detail:  "Your account is permanently blocked for repeated violations of community guidelines.",
		}
	}

	if state.TemporaryBlockUntil != nil {
		if now.Before(*state.TemporaryBlockUntil) {
			remaining := state.TemporaryBlockUntil.Sub(now)
			days := int((remaining + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
			return state, Decision{
				Allowed:       false,
				Kind:          DenialTemporary,
				Detail:        fmt.Sprintf("Your account is temporarily blocked. %d day(s) remaining.", days),
				DaysRemaining: days,
			}
		}
		state.TemporaryBlockUntil = nil
		return state, Decision{Allowed: true, Cleared: true}
	}

	return state, Decision{Allowed: true}
}
