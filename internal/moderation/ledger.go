package moderation

import (
	"fmt"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/models"
)

type OutcomeKind string

const (
	OutcomeClean       OutcomeKind = "clean"
	OutcomeWarned      OutcomeKind = "warned"
	OutcomeTempBlocked OutcomeKind = "blocked_temporary"
	OutcomePermBlocked OutcomeKind = "blocked_permanent"
)

const (
	// MaxWarnings is the count at which a user is permanently blocked.
	MaxWarnings = 3
	// TempBlockDuration is applied when the count reaches MaxWarnings-1.
	TempBlockDuration = 7 * 24 * time.Hour
)

// Outcome is the ledger's decision for one violation.
type Outcome struct {
	Kind         OutcomeKind `json:"kind"`
	WarningCount int         `json:"warning_count"`
	Message      string      `json:"message"`
	BlockedUntil *time.Time  `json:"blocked_until,omitempty"`
}

// RecordViolation applies the warning escalation policy to a moderation state
// snapshot. It is a pure decision: the caller loads the state, calls this, and
// persists the returned state before reporting the outcome. A clean scan
// result returns the state untouched.
//
// Two concurrent violations for the same user can both observe the
// pre-increment count and under-count by one; callers accept this rather than
// serializing writes (see DESIGN.md).
func RecordViolation(state models.ModerationState, result Result, offendingText string, now time.Time) (models.ModerationState, Outcome) {
	if !result.Flagged {
		return state, Outcome{Kind: OutcomeClean, WarningCount: state.WarningCount}
	}

	if state.WarningCount < 0 {
		state.WarningCount = 0
	}
	before := state.WarningCount
	state.WarningCount = before + 1
	// Copy the history so the caller's snapshot is never aliased.
	history := make([]models.WarningEntry, len(state.WarningHistory), len(state.WarningHistory)+1)
	copy(history, state.WarningHistory)
	state.WarningHistory = append(history, models.WarningEntry{
		Timestamp:     now,
		Reason:        strings.Join(result.MatchedTerms, ", "),
		OffendingText: truncate(offendingText, 200),
	})

	switch {
	case before >= MaxWarnings-1:
		state.PermanentlyBlocked = true
		return state, Outcome{
			Kind:         OutcomePermBlocked,
			WarningCount: state.WarningCount,
			Message:      "Your account has been permanently blocked for repeated violations of community guidelines.",
		}
	case before == MaxWarnings-2:
		until := now.Add(TempBlockDuration)
		state.TemporaryBlockUntil = &until
		return state, Outcome{
			Kind:         OutcomeTempBlocked,
			WarningCount: state.WarningCount,
			Message:      fmt.Sprintf("Your account is temporarily blocked until %s.", until.UTC().Format(time.RFC3339)),
			BlockedUntil: &until,
		}
	default:
		remaining := MaxWarnings - state.WarningCount
		return state, Outcome{
			Kind:         OutcomeWarned,
			WarningCount: state.WarningCount,
			Message:      fmt.Sprintf("Your content violates community guidelines. %d more violation(s) will block your account.", remaining),
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
