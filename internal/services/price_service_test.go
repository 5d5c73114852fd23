package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/backend/internal/models"
)

func quote(state, district, market string, min, max, modal float64) models.PriceRecord {
	return models.PriceRecord{
		State:      state,
		District:   district,
		Market:     market,
		Commodity:  "Onion",
		MinPrice:   min,
		MaxPrice:   max,
		ModalPrice: modal,
	}
}

func TestAggregateMarkets(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	records := []models.PriceRecord{
		quote("Maharashtra", "Nashik", "Lasalgaon", 1200, 1800, 1500),
		quote("Maharashtra", "Nashik", "Lasalgaon", 1100, 1900, 1700),
		quote("Maharashtra", "Pune", "Pune", 1000, 1400, 1200),
		quote("Karnataka", "Bangalore", "Binny Mill", 0, 0, 0), // unparseable upstream row
	}

	markets := aggregateMarkets(records)
	require.Len(markets, 2, "zero-priced records are dropped")

	// Sorted by average modal, cheapest first and flagged best value.
	assert.Equal("Pune", markets[0].Market)
	assert.True(markets[0].BestValue)
	assert.Equal(1200.0, markets[0].AvgModal)
	assert.Equal(1, markets[0].Quotes)

	assert.Equal("Lasalgaon", markets[1].Market)
	assert.False(markets[1].BestValue)
	assert.Equal(1600.0, markets[1].AvgModal)
	assert.Equal(2, markets[1].Quotes)
	assert.Equal(1100.0, markets[1].MinPrice)
	assert.Equal(1900.0, markets[1].MaxPrice)
}

func TestAggregateMarketsEmpty(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(aggregateMarkets(nil))
}

func TestBuildHeatmap(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	records := []models.PriceRecord{
		quote("Karnataka", "", "A", 0, 0, 1000),
		quote("Karnataka", "", "B", 0, 0, 1200),
		quote("Maharashtra", "", "C", 0, 0, 1600),
		quote("Punjab", "", "D", 0, 0, 2200),
	}

	cells := buildHeatmap(records)
	require.Len(cells, 3)

	// States come back sorted.
	assert.Equal("Karnataka", cells[0].State)
	assert.Equal(1100.0, cells[0].AvgModal)
	assert.Equal(2, cells[0].Quotes)
	assert.Equal("low", cells[0].Intensity)

	assert.Equal("Maharashtra", cells[1].State)
	assert.Equal("medium", cells[1].Intensity)

	assert.Equal("Punjab", cells[2].State)
	assert.Equal("high", cells[2].Intensity)
}

func TestBuildHeatmapSingleState(t *testing.T) {
	assert := assert.New(t)

	cells := buildHeatmap([]models.PriceRecord{quote("Punjab", "", "D", 0, 0, 2000)})
	assert.Len(cells, 1)
	assert.Equal("medium", cells[0].Intensity, "no spread means the middle bucket")
}

func TestCacheKey(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("prices:compare:onion:maharashtra", cacheKey("compare", " Onion ", "Maharashtra"))
	assert.Equal("prices:heatmap:wheat", cacheKey("heatmap", "wheat"))
}

func TestCompareEndToEnd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"records": [
				{"state": "Maharashtra", "district": "Nashik", "market": "Lasalgaon", "commodity": "Onion",
				 "arrival_date": "28/08/2026", "min_price": "1200", "max_price": "1800", "modal_price": "1500"}
			]
		}`))
	}))
	defer srv.Close()

	// nil cache: the service must work without Redis.
	svc := NewPriceService(NewMarketClient("k", srv.URL), nil, time.Minute)
	result, err := svc.Compare(context.Background(), "Onion", nil)
	require.NoError(err)
	require.Len(result.Markets, 1)
	assert.Equal("Onion", result.Commodity)
	assert.Equal("Lasalgaon", result.Markets[0].Market)
	assert.True(result.Markets[0].BestValue)
}
