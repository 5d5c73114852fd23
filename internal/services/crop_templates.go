package services

import (
	"errors"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/models"
)

var ErrUnknownCrop = errors.New("unknown crop")

// cropStage is one entry of a crop template: a task active from StartDay to
// EndDay, counted in days after sowing.
type cropStage struct {
	Stage       string
	Description string
	StartDay    int
	EndDay      int
}

// cropTemplates is the static schedule table. Offsets are indicative
// agronomic windows, not regional advisories.
var cropTemplates = map[string][]cropStage{
	"wheat": {
		{Stage: "sowing", Description: "Sow seeds at 100-125 kg/ha with seed drill", StartDay: 0, EndDay: 1},
		{Stage: "irrigation", Description: "First irrigation at crown root initiation", StartDay: 20, EndDay: 25},
		{Stage: "fertilization", Description: "Top-dress nitrogen after first irrigation", StartDay: 25, EndDay: 30},
		{Stage: "weeding", Description: "Manual weeding or herbicide application", StartDay: 30, EndDay: 40},
		{Stage: "irrigation", Description: "Irrigation at flowering stage", StartDay: 60, EndDay: 70},
		{Stage: "harvest", Description: "Harvest when grain moisture is below 14%", StartDay: 120, EndDay: 140},
	},
	"rice": {
		{Stage: "nursery", Description: "Prepare nursery beds and sow seeds", StartDay: 0, EndDay: 5},
		{Stage: "transplanting", Description: "Transplant 20-25 day old seedlings", StartDay: 25, EndDay: 30},
		{Stage: "fertilization", Description: "Apply basal dose of NPK", StartDay: 25, EndDay: 35},
		{Stage: "weeding", Description: "First weeding and water level check", StartDay: 45, EndDay: 55},
		{Stage: "fertilization", Description: "Top-dress nitrogen at panicle initiation", StartDay: 60, EndDay: 65},
		{Stage: "harvest", Description: "Harvest at 80% golden grain stage", StartDay: 110, EndDay: 130},
	},
	"maize": {
		{Stage: "sowing", Description: "Sow on ridges at 20 kg/ha", StartDay: 0, EndDay: 1},
		{Stage: "thinning", Description: "Thin to one plant per hill", StartDay: 15, EndDay: 20},
		{Stage: "fertilization", Description: "Side-dress nitrogen at knee-high stage", StartDay: 30, EndDay: 35},
		{Stage: "irrigation", Description: "Critical irrigation at tasseling", StartDay: 50, EndDay: 60},
		{Stage: "harvest", Description: "Harvest at black layer formation", StartDay: 90, EndDay: 110},
	},
	"tomato": {
		{Stage: "nursery", Description: "Raise seedlings in trays", StartDay: 0, EndDay: 5},
		{Stage: "transplanting", Description: "Transplant 4-5 week old seedlings", StartDay: 30, EndDay: 35},
		{Stage: "staking", Description: "Stake plants and prune side shoots", StartDay: 45, EndDay: 55},
		{Stage: "fertilization", Description: "Fertigation at flowering", StartDay: 55, EndDay: 65},
		{Stage: "harvest", Description: "Pick fruits at breaker stage, repeat weekly", StartDay: 90, EndDay: 150},
	},
	"onion": {
		{Stage: "nursery", Description: "Sow seeds in raised nursery beds", StartDay: 0, EndDay: 5},
		{Stage: "transplanting", Description: "Transplant 6-8 week old seedlings", StartDay: 45, EndDay: 50},
		{Stage: "weeding", Description: "Shallow weeding, avoid bulb damage", StartDay: 70, EndDay: 80},
		{Stage: "irrigation", Description: "Stop irrigation 15 days before harvest", StartDay: 120, EndDay: 125},
		{Stage: "harvest", Description: "Harvest when 50% tops fall over", StartDay: 135, EndDay: 150},
	},
}

// SupportedCrops lists the crops a schedule can be generated for.
func SupportedCrops() []string {
	out := make([]string, 0, len(cropTemplates))
	for crop := range cropTemplates {
		out = append(out, crop)
	}
	return out
}

// ExpandTemplate turns a crop template into dated tasks for one user. The
// expansion is deterministic: fixed offsets from the sowing date, no clock
// reads. IDs and CreatedAt are left for the persistence layer.
func ExpandTemplate(userID, crop string, sowingDate time.Time) ([]models.CalendarTask, error) {
	stages, ok := cropTemplates[strings.ToLower(strings.TrimSpace(crop))]
	if !ok {
		return nil, ErrUnknownCrop
	}

	tasks := make([]models.CalendarTask, 0, len(stages))
	for _, st := range stages {
		tasks = append(tasks, models.CalendarTask{
			UserID:      userID,
			Crop:        strings.ToLower(strings.TrimSpace(crop)),
			Stage:       st.Stage,
			Description: st.Description,
			StartDate:   sowingDate.AddDate(0, 0, st.StartDay),
			EndDate:     sowingDate.AddDate(0, 0, st.EndDay),
		})
	}
	return tasks, nil
}
