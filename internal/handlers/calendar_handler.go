package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrilink/backend/internal/middleware"
	"github.com/agrilink/backend/internal/models"
	"github.com/agrilink/backend/internal/services"
)

type CalendarHandler struct {
	calendarService *services.MongoCalendarService
}

func NewCalendarHandler(calendarService *services.MongoCalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tasks, err := h.calendarService.GenerateSchedule(ctx, userID, req.Crop, req.SowingDate)
	if err != nil {
		if err == services.ErrUnknownCrop {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown crop"))
			return
		}
		log.Printf("[GenerateSchedule] user=%s crop=%s error=%v", userID, req.Crop, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate schedule"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(tasks))
}

func (h *CalendarHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	crop := r.URL.Query().Get("crop")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tasks, err := h.calendarService.ListTasks(ctx, userID, crop)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list tasks"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(tasks))
}

func (h *CalendarHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	taskID := chi.URLParam(r, "taskId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	task, err := h.calendarService.CompleteTask(ctx, userID, taskID)
	if err != nil {
		if err == services.ErrTaskNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Task not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to complete task"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(task))
}

func (h *CalendarHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	crop := chi.URLParam(r, "crop")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	deleted, err := h.calendarService.DeleteSchedule(ctx, userID, crop)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete schedule"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]int64{"deleted": deleted}))
}

// ListCrops returns the crops a schedule can be generated for.
func (h *CalendarHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(services.SupportedCrops()))
}
