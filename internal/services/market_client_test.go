package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPrices(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal("test-key", q.Get("api-key"))
		assert.Equal("json", q.Get("format"))
		assert.Equal("Onion", q.Get("filters[commodity]"))
		assert.Equal("Maharashtra", q.Get("filters[state]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total": 2,
			"records": [
				{"state": "Maharashtra", "district": "Nashik", "market": "Lasalgaon", "commodity": "Onion",
				 "variety": "Red", "arrival_date": "28/08/2026", "min_price": "1,200", "max_price": "1800", "modal_price": "1500"},
				{"state": "Maharashtra", "district": "Pune", "market": "Pune", "commodity": "Onion",
				 "variety": "Local", "arrival_date": "28/08/2026", "min_price": "", "max_price": "bad", "modal_price": "1400"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewMarketClient("test-key", srv.URL)
	records, err := client.FetchPrices(context.Background(), "Onion", "Maharashtra", 10)
	require.NoError(err)
	require.Len(records, 2)

	assert.Equal("Lasalgaon", records[0].Market)
	assert.Equal(1200.0, records[0].MinPrice, "comma-separated price should parse")
	assert.Equal(1500.0, records[0].ModalPrice)

	assert.Equal(0.0, records[1].MinPrice, "empty price parses as zero")
	assert.Equal(0.0, records[1].MaxPrice, "garbage price parses as zero")
	assert.Equal(1400.0, records[1].ModalPrice)
}

func TestFetchPricesUpstreamError(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewMarketClient("k", srv.URL)
	_, err := client.FetchPrices(context.Background(), "Onion", "", 0)
	assert.Error(err)
	assert.Contains(err.Error(), "502")
}

func TestParsePrice(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		raw  string
		want float64
	}{
		{"1500", 1500},
		{"1,500.50", 1500.50},
		{"  1200 ", 1200},
		{"", 0},
		{"NA", 0},
	}
	for _, tc := range cases {
		assert.Equal(tc.want, parsePrice(tc.raw), "raw %q", tc.raw)
	}
}
