package models

import (
	"time"
)

type CalendarTask struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Crop        string    `json:"crop" bson:"crop"`
	Stage       string    `json:"stage" bson:"stage"`
	Description string    `json:"description" bson:"description"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type GenerateScheduleRequest struct {
	Crop       string    `json:"crop"`
	SowingDate time.Time `json:"sowing_date"`
}

func (r *GenerateScheduleRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Crop == "" {
		errors["crop"] = "Crop is required"
	}
	if r.SowingDate.IsZero() {
		errors["sowing_date"] = "Sowing date is required"
	}

	return errors
}
