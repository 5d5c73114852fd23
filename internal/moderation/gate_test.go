package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agrilink/backend/internal/models"
)

func TestCheckAccessCleanState(t *testing.T) {
	assert := assert.New(t)

	state, dec := CheckAccess(models.ModerationState{}, time.Now().UTC())
	assert.True(dec.Allowed)
	assert.False(dec.Cleared)
	assert.Nil(state.TemporaryBlockUntil)
}

func TestCheckAccessPermanentBlock(t *testing.T) {
	assert := assert.New(t)

	state := models.ModerationState{WarningCount: 3, PermanentlyBlocked: true}
	_, dec := CheckAccess(state, time.Now().UTC())
	assert.False(dec.Allowed)
	assert.Equal(DenialPermanent, dec.Kind)
	assert.NotEmpty(dec.Detail)
}

func TestCheckAccessActiveTemporaryBlock(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := now.Add(3*24*time.Hour + time.Hour)
	state := models.ModerationState{WarningCount: 2, TemporaryBlockUntil: &until}

	next, dec := CheckAccess(state, now)
	assert.False(dec.Allowed)
	assert.Equal(DenialTemporary, dec.Kind)
	// 3 days and 1 hour remaining rounds up to 4 days.
	assert.Equal(4, dec.DaysRemaining)
	assert.NotNil(next.TemporaryBlockUntil, "active block must not be cleared")
}

func TestCheckAccessDaysRemainingCeiling(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := now.Add(time.Minute)
	state := models.ModerationState{WarningCount: 2, TemporaryBlockUntil: &until}

	_, dec := CheckAccess(state, now)
	assert.False(dec.Allowed)
	assert.Equal(1, dec.DaysRemaining)
}

func TestCheckAccessClearsExpiredBlockOnce(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := now.Add(-time.Millisecond)
	state := models.ModerationState{WarningCount: 2, TemporaryBlockUntil: &until}

	next, dec := CheckAccess(state, now)
	assert.True(dec.Allowed)
	assert.True(dec.Cleared)
	assert.Nil(next.TemporaryBlockUntil)
	// Warning history and count are untouched by the gate.
	assert.Equal(2, next.WarningCount)

	// Second check is idempotent: allowed, nothing left to clear.
	next, dec = CheckAccess(next, now)
	assert.True(dec.Allowed)
	assert.False(dec.Cleared)
	assert.Nil(next.TemporaryBlockUntil)
}
