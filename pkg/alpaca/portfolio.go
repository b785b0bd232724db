package alpaca

import (
	"strconv"
	"time"

	"github.com/segmentio/encoding/json"
)

// PortfolioHistory is the columnar time series returned by the portfolio
// history endpoint: four parallel arrays indexed by position plus the scalar
// basis fields. The arrays are expected to be equal length and index-aligned,
// though the API occasionally truncates the value arrays early.
type PortfolioHistory struct {
	Timestamp     []int64   `json:"timestamp"`
	Equity        []float64 `json:"equity"`
	ProfitLoss    []float64 `json:"profit_loss"`
	ProfitLossPct []float64 `json:"profit_loss_pct"`
	BaseValue     float64   `json:"base_value"`
	BaseValueAsOf string    `json:"base_value_asof"`
	Timeframe     string    `json:"timeframe"`
}

// HistoryFrame is one row of portfolio history: the columnar record
// denormalized at a single timestamp index.
type HistoryFrame struct {
	Time              time.Time `json:"time"`
	Equity            float64   `json:"equity"`
	ProfitLoss        float64   `json:"profit_loss"`
	ProfitLossPercent float64   `json:"profit_loss_percent"`
	BaseValue         float64   `json:"base_value"`
	BaseValueAsOf     string    `json:"base_value_as_of"`
}

// Unix seconds for 0001-01-01T00:00:00Z and 9999-12-31T23:59:59Z. The
// calendar bounds the API can meaningfully report within.
const (
	minFrameUnix = -62135596800
	maxFrameUnix = 253402300799
)

// ToFrames reshapes the columnar record into per-timestamp rows, preserving
// input order. A timestamp outside the representable calendar range fails the
// whole operation since it signals corrupt upstream data. An index missing
// from any value array is skipped, not an error: the API has been observed to
// deliver truncated trailing arrays.
func (h *PortfolioHistory) ToFrames() ([]HistoryFrame, error) {
	frames := make([]HistoryFrame, 0, len(h.Timestamp))
	for idx, ts := range h.Timestamp {
		if ts < minFrameUnix || ts > maxFrameUnix {
			return nil, invalidTimestamp("timestamp", strconv.FormatInt(ts, 10), nil)
		}
		if idx >= len(h.Equity) || idx >= len(h.ProfitLoss) || idx >= len(h.ProfitLossPct) {
			continue
		}
		frames = append(frames, HistoryFrame{
			Time:              time.Unix(ts, 0).UTC(),
			Equity:            h.Equity[idx],
			ProfitLoss:        h.ProfitLoss[idx],
			ProfitLossPercent: h.ProfitLossPct[idx],
			BaseValue:         h.BaseValue,
			BaseValueAsOf:     h.BaseValueAsOf,
		})
	}
	return frames, nil
}

// DecodePortfolioHistory parses the portfolio history response body.
func DecodePortfolioHistory(data []byte) (*PortfolioHistory, error) {
	var history PortfolioHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, malformedPayload(err)
	}
	return &history, nil
}
