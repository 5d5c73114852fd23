package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/models"
)

// MarketClient fetches mandi price records from the government market data
// API. The endpoint and HTTP client are injectable for tests.
type MarketClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// marketAPIRecord mirrors the upstream payload; prices arrive as strings.
type marketAPIRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}

type marketAPIResponse struct {
	Records []marketAPIRecord `json:"records"`
	Total   int               `json:"total"`
}

func NewMarketClient(apiKey, baseURL string) *MarketClient {
	return &MarketClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchPrices queries the upstream resource for a commodity, optionally
// narrowed to one state. Upstream failures propagate unchanged.
func (c *MarketClient) FetchPrices(ctx context.Context, commodity, state string, limit int) ([]models.PriceRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	q := url.Values{}
	q.Set("api-key", c.APIKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("filters[commodity]", commodity)
	if strings.TrimSpace(state) != "" {
		q.Set("filters[state]", state)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market api http %d", resp.StatusCode)
	}

	var out marketAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	records := make([]models.PriceRecord, 0, len(out.Records))
	for _, r := range out.Records {
		records = append(records, models.PriceRecord{
			State:       r.State,
			District:    r.District,
			Market:      r.Market,
			Commodity:   r.Commodity,
			Variety:     r.Variety,
			ArrivalDate: r.ArrivalDate,
			MinPrice:    parsePrice(r.MinPrice),
			MaxPrice:    parsePrice(r.MaxPrice),
			ModalPrice:  parsePrice(r.ModalPrice),
		})
	}
	return records, nil
}

// parsePrice tolerates the API's string prices, including stray commas.
// Unparseable values come back as 0 and are skipped by the aggregators.
func parsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
