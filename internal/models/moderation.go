package models

import "time"

// WarningEntry is one recorded violation. History is append-only; entries are
// never removed, even after a block expires.
type WarningEntry struct {
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	Reason        string    `json:"reason" bson:"reason"`
	OffendingText string    `json:"offending_text" bson:"offending_text"`
}

// ModerationState is the moderation subset of a user record. The zero value is
// a user in good standing.
type ModerationState struct {
	WarningCount        int            `json:"warning_count" bson:"warning_count"`
	WarningHistory      []WarningEntry `json:"warning_history,omitempty" bson:"warning_history,omitempty"`
	PermanentlyBlocked  bool           `json:"permanently_blocked" bson:"permanently_blocked"`
	TemporaryBlockUntil *time.Time     `json:"temporary_block_until,omitempty" bson:"temporary_block_until,omitempty"`
}
