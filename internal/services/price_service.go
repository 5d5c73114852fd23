package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agrilink/backend/internal/models"
)

// PriceService serves compare and heatmap views over the government market
// data API, with a best-effort Redis cache in front. Cache failures are
// logged and the request falls through to the upstream API.
type PriceService struct {
	market *MarketClient
	cache  *redis.Client
	ttl    time.Duration
}

func NewPriceService(market *MarketClient, cache *redis.Client, ttl time.Duration) *PriceService {
	return &PriceService{market: market, cache: cache, ttl: ttl}
}

// Latest returns raw price records for a commodity, optionally filtered by state.
func (s *PriceService) Latest(ctx context.Context, commodity, state string, limit int) ([]models.PriceRecord, error) {
	key := cacheKey("latest", commodity, state)

	var cached []models.PriceRecord
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.market.FetchPrices(ctx, commodity, state, limit)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, key, records)
	return records, nil
}

// Compare groups a commodity's quotes by market and flags the cheapest market
// by average modal price.
func (s *PriceService) Compare(ctx context.Context, commodity string, states []string) (*models.CompareResult, error) {
	key := cacheKey("compare", commodity, strings.Join(states, "|"))

	var cached models.CompareResult
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := s.fetchForStates(ctx, commodity, states)
	if err != nil {
		return nil, err
	}

	result := &models.CompareResult{
		Commodity: commodity,
		Markets:   aggregateMarkets(records),
	}
	s.writeCache(ctx, key, result)
	return result, nil
}

// Heatmap buckets a commodity's average modal price per state into relative
// intensity tiers for the price map view.
func (s *PriceService) Heatmap(ctx context.Context, commodity string) (*models.HeatmapResult, error) {
	key := cacheKey("heatmap", commodity)

	var cached models.HeatmapResult
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := s.market.FetchPrices(ctx, commodity, "", 0)
	if err != nil {
		return nil, err
	}

	result := &models.HeatmapResult{
		Commodity: commodity,
		Cells:     buildHeatmap(records),
	}
	s.writeCache(ctx, key, result)
	return result, nil
}

func (s *PriceService) fetchForStates(ctx context.Context, commodity string, states []string) ([]models.PriceRecord, error) {
	if len(states) == 0 {
		return s.market.FetchPrices(ctx, commodity, "", 0)
	}
	var all []models.PriceRecord
	for _, st := range states {
		records, err := s.market.FetchPrices(ctx, commodity, st, 0)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func (s *PriceService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[prices] cache read failed key=%s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[prices] cache decode failed key=%s: %v", key, err)
		return false
	}
	return true
}

func (s *PriceService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("[prices] cache write failed key=%s: %v", key, err)
	}
}

func cacheKey(view string, parts ...string) string {
	normalized := make([]string, 0, len(parts)+2)
	normalized = append(normalized, "prices", view)
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(normalized, ":")
}

// aggregateMarkets groups records by market, keeping min/max bounds and the
// average modal price. Zero-priced records (unparseable upstream values) are
// skipped. The cheapest market by average modal is flagged BestValue.
func aggregateMarkets(records []models.PriceRecord) []models.MarketComparison {
	type bucket struct {
		comparison models.MarketComparison
		modalSum   float64
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		if r.ModalPrice <= 0 {
			continue
		}
		key := r.State + "/" + r.District + "/" + r.Market
		b, ok := buckets[key]
		if !ok {
			b = &bucket{comparison: models.MarketComparison{
				Market:   r.Market,
				District: r.District,
				State:    r.State,
				MinPrice: math.MaxFloat64,
			}}
			buckets[key] = b
		}
		b.comparison.Quotes++
		b.modalSum += r.ModalPrice
		if r.MinPrice > 0 && r.MinPrice < b.comparison.MinPrice {
			b.comparison.MinPrice = r.MinPrice
		}
		if r.MaxPrice > b.comparison.MaxPrice {
			b.comparison.MaxPrice = r.MaxPrice
		}
	}

	out := make([]models.MarketComparison, 0, len(buckets))
	for _, b := range buckets {
		c := b.comparison
		c.AvgModal = round2(b.modalSum / float64(c.Quotes))
		if c.MinPrice == math.MaxFloat64 {
			c.MinPrice = 0
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].AvgModal < out[j].AvgModal })
	if len(out) > 0 {
		out[0].BestValue = true
	}
	return out
}

// buildHeatmap averages modal prices per state and assigns each state to a
// relative intensity third between the cheapest and the dearest state.
func buildHeatmap(records []models.PriceRecord) []models.HeatmapCell {
	type bucket struct {
		sum    float64
		quotes int
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		if r.ModalPrice <= 0 || r.State == "" {
			continue
		}
		b, ok := buckets[r.State]
		if !ok {
			b = &bucket{}
			buckets[r.State] = b
		}
		b.sum += r.ModalPrice
		b.quotes++
	}

	cells := make([]models.HeatmapCell, 0, len(buckets))
	minAvg, maxAvg := math.MaxFloat64, 0.0
	for state, b := range buckets {
		avg := round2(b.sum / float64(b.quotes))
		if avg < minAvg {
			minAvg = avg
		}
		if avg > maxAvg {
			maxAvg = avg
		}
		cells = append(cells, models.HeatmapCell{State: state, AvgModal: avg, Quotes: b.quotes})
	}

	span := maxAvg - minAvg
	for i := range cells {
		cells[i].Intensity = intensityBucket(cells[i].AvgModal, minAvg, span)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].State < cells[j].State })
	return cells
}

func intensityBucket(avg, minAvg, span float64) string {
	if span <= 0 {
		return "medium"
	}
	switch pos := (avg - minAvg) / span; {
	case pos < 1.0/3.0:
		return "low"
	case pos < 2.0/3.0:
		return "medium"
	default:
		return "high"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
