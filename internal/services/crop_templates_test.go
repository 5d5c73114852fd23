package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplateWheat(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sowing := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	tasks, err := ExpandTemplate("user-1", "Wheat", sowing)
	require.NoError(err)
	require.NotEmpty(tasks)

	first := tasks[0]
	assert.Equal("user-1", first.UserID)
	assert.Equal("wheat", first.Crop)
	assert.Equal("sowing", first.Stage)
	assert.Equal(sowing, first.StartDate)
	assert.Equal(sowing.AddDate(0, 0, 1), first.EndDate)

	last := tasks[len(tasks)-1]
	assert.Equal("harvest", last.Stage)
	assert.Equal(sowing.AddDate(0, 0, 120), last.StartDate)
	assert.Equal(sowing.AddDate(0, 0, 140), last.EndDate)

	// Offsets are fixed: tasks never start before sowing and are ordered.
	for i, task := range tasks {
		assert.False(task.StartDate.Before(sowing), "task %d starts before sowing", i)
		assert.False(task.EndDate.Before(task.StartDate), "task %d ends before it starts", i)
	}
}

func TestExpandTemplateDeterministic(t *testing.T) {
	assert := assert.New(t)

	sowing := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	a, err := ExpandTemplate("u", "rice", sowing)
	assert.NoError(err)
	b, err := ExpandTemplate("u", "rice", sowing)
	assert.NoError(err)
	assert.Equal(a, b)
}

func TestExpandTemplateUnknownCrop(t *testing.T) {
	assert := assert.New(t)

	_, err := ExpandTemplate("u", "dragonfruit", time.Now())
	assert.ErrorIs(err, ErrUnknownCrop)
}

func TestSupportedCrops(t *testing.T) {
	assert := assert.New(t)

	crops := SupportedCrops()
	assert.Contains(crops, "wheat")
	assert.Contains(crops, "rice")
	assert.Contains(crops, "onion")
}
