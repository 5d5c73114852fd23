package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/models"
	"github.com/agrilink/backend/internal/services"
)

type PriceHandler struct {
	priceService *services.PriceService
}

func NewPriceHandler(priceService *services.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

func (h *PriceHandler) Latest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	commodity := strings.TrimSpace(query.Get("commodity"))
	if commodity == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing required parameter: commodity"))
		return
	}
	state := strings.TrimSpace(query.Get("state"))

	limit := 100
	if rawLimit := query.Get("limit"); rawLimit != "" {
		if v, err := strconv.Atoi(rawLimit); err == nil && v > 0 {
			limit = v
		}
	}

	ctx, cancel := contextWithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	records, err := h.priceService.Latest(ctx, commodity, state, limit)
	if err != nil {
		log.Printf("[Latest] commodity=%s error=%v", commodity, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to fetch market prices"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(records))
}

func (h *PriceHandler) Compare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	commodity := strings.TrimSpace(query.Get("commodity"))
	if commodity == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing required parameter: commodity"))
		return
	}

	var states []string
	if raw := strings.TrimSpace(query.Get("states")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				states = append(states, s)
			}
		}
	}

	ctx, cancel := contextWithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := h.priceService.Compare(ctx, commodity, states)
	if err != nil {
		log.Printf("[Compare] commodity=%s error=%v", commodity, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to compare market prices"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *PriceHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	commodity := strings.TrimSpace(r.URL.Query().Get("commodity"))
	if commodity == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing required parameter: commodity"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := h.priceService.Heatmap(ctx, commodity)
	if err != nil {
		log.Printf("[Heatmap] commodity=%s error=%v", commodity, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to build price heatmap"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
