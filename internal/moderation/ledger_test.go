package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/backend/internal/models"
)

func flaggedResult() Result {
	return Result{Flagged: true, MatchedTerms: []string{"scam"}, Severity: SeverityMedium}
}

func TestRecordViolationEscalation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := models.ModerationState{}

	// First violation: warned.
	state, out := RecordViolation(state, flaggedResult(), "this is a scam", now)
	assert.Equal(OutcomeWarned, out.Kind)
	assert.Equal(1, out.WarningCount)
	assert.Equal(1, state.WarningCount)
	assert.Contains(out.Message, "2 more violation(s)")
	assert.Nil(state.TemporaryBlockUntil)
	assert.False(state.PermanentlyBlocked)
	require.Len(state.WarningHistory, 1)
	assert.Equal("this is a scam", state.WarningHistory[0].OffendingText)
	assert.Equal("scam", state.WarningHistory[0].Reason)

	// Second violation: temporary block for 7 days.
	state, out = RecordViolation(state, flaggedResult(), "another scam", now)
	assert.Equal(OutcomeTempBlocked, out.Kind)
	assert.Equal(2, state.WarningCount)
	require.NotNil(state.TemporaryBlockUntil)
	assert.Equal(now.Add(7*24*time.Hour), *state.TemporaryBlockUntil)
	require.NotNil(out.BlockedUntil)
	assert.Equal(*state.TemporaryBlockUntil, *out.BlockedUntil)
	assert.False(state.PermanentlyBlocked)

	// Third violation: permanent block.
	state, out = RecordViolation(state, flaggedResult(), "scam again", now)
	assert.Equal(OutcomePermBlocked, out.Kind)
	assert.Equal(3, state.WarningCount)
	assert.True(state.PermanentlyBlocked)
	assert.Len(state.WarningHistory, 3)
}

func TestRecordViolationCleanResultIsNoOp(t *testing.T) {
	assert := assert.New(t)

	now := time.Now().UTC()
	state := models.ModerationState{WarningCount: 1}

	next, out := RecordViolation(state, Result{Flagged: false, Severity: SeverityLow}, "all fine", now)
	assert.Equal(OutcomeClean, out.Kind)
	assert.Equal(state, next)
	assert.Empty(next.WarningHistory)
}

func TestRecordViolationBeyondMaxStaysPermanent(t *testing.T) {
	assert := assert.New(t)

	now := time.Now().UTC()
	state := models.ModerationState{WarningCount: 5, PermanentlyBlocked: true}

	next, out := RecordViolation(state, flaggedResult(), "still at it", now)
	assert.Equal(OutcomePermBlocked, out.Kind)
	assert.Equal(6, next.WarningCount)
	assert.True(next.PermanentlyBlocked)
}

func TestWarningCountMonotonic(t *testing.T) {
	assert := assert.New(t)

	now := time.Now().UTC()
	state := models.ModerationState{}
	prev := 0
	for i := 0; i < 6; i++ {
		var res Result
		if i%2 == 0 {
			res = flaggedResult()
		}
		state, _ = RecordViolation(state, res, "text", now)
		assert.GreaterOrEqual(state.WarningCount, prev)
		prev = state.WarningCount
	}
	assert.Equal(3, state.WarningCount)
}

func TestRecordViolationDoesNotAliasHistory(t *testing.T) {
	assert := assert.New(t)

	now := time.Now().UTC()
	state := models.ModerationState{}
	state, _ = RecordViolation(state, flaggedResult(), "one", now)

	snapshot := state
	_, _ = RecordViolation(state, flaggedResult(), "two", now)
	assert.Len(snapshot.WarningHistory, 1)
	assert.Equal("one", snapshot.WarningHistory[0].OffendingText)
}
