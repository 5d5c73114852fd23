package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/agrilink/backend/internal/models"
	"github.com/agrilink/backend/internal/moderation"
	"github.com/agrilink/backend/internal/services"
)

// moderate runs the access gate and content scan for a content-mutating
// request: load state, pure decision, persist, respond. It writes the HTTP
// response itself when the request must not proceed and returns ok=false.
// The updated state is always persisted before any outcome reaches the
// client, so no partial-warning state is ever observable.
func (h *ForumHandler) moderate(ctx context.Context, w http.ResponseWriter, userID, content, title string) (*models.User, bool) {
	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
			return nil, false
		}
		log.Printf("[moderate] load user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user"))
		return nil, false
	}

	now := time.Now().UTC()

	state, decision := moderation.CheckAccess(user.Moderation, now)
	if decision.Cleared {
		// Lazy clear of an expired temporary block, persisted exactly once.
		if err := h.userService.SaveModerationState(ctx, userID, state); err != nil {
			log.Printf("[moderate] clear block user=%s error=%v", userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update moderation state"))
			return nil, false
		}
	}
	if !decision.Allowed {
		writeJSON(w, http.StatusForbidden, models.NewModerationResponse(decision.Detail, decision))
		return nil, false
	}

	result := h.scanner.Scan(content, title)
	if !result.Flagged {
		return user, true
	}

	state, outcome := moderation.RecordViolation(state, result, content, now)
	if err := h.userService.SaveModerationState(ctx, userID, state); err != nil {
		log.Printf("[moderate] save state user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update moderation state"))
		return nil, false
	}

	log.Printf("[moderate] user=%s outcome=%s warnings=%d terms=%v", userID, outcome.Kind, outcome.WarningCount, result.MatchedTerms)

	switch outcome.Kind {
	case moderation.OutcomeWarned:
		writeJSON(w, http.StatusUnprocessableEntity, models.NewModerationResponse(outcome.Message, outcome))
	default:
		writeJSON(w, http.StatusForbidden, models.NewModerationResponse(outcome.Message, outcome))
	}
	return nil, false
}
