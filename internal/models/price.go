package models

// PriceRecord is one mandi price quote as returned by the government market
// data API. Prices are rupees per quintal.
type PriceRecord struct {
	State       string  `json:"state"`
	District    string  `json:"district"`
	Market      string  `json:"market"`
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety,omitempty"`
	ArrivalDate string  `json:"arrival_date"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	ModalPrice  float64 `json:"modal_price"`
}

// MarketComparison aggregates quotes for one market.
type MarketComparison struct {
	Market    string  `json:"market"`
	District  string  `json:"district"`
	State     string  `json:"state"`
	Quotes    int     `json:"quotes"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	AvgModal  float64 `json:"avg_modal"`
	BestValue bool    `json:"best_value"`
}

type CompareResult struct {
	Commodity string             `json:"commodity"`
	Markets   []MarketComparison `json:"markets"`
}

// HeatmapCell is one state's averaged modal price with a relative intensity
// bucket for rendering.
type HeatmapCell struct {
	State     string  `json:"state"`
	AvgModal  float64 `json:"avg_modal"`
	Quotes    int     `json:"quotes"`
	Intensity string  `json:"intensity"` // low | medium | high
}

type HeatmapResult struct {
	Commodity string        `json:"commodity"`
	Cells     []HeatmapCell `json:"cells"`
}
