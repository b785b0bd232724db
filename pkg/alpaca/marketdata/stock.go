// Package marketdata defines the read-only market data snapshots the API
// serves alongside the trading endpoints: latest trades per stock symbol and
// latest OHLCV bars per crypto symbol. Unlike the trading payloads these
// arrive with natively typed JSON numbers, so decode here is structural; only
// timestamps need normalization.
package marketdata

import (
	"github.com/segmentio/encoding/json"

	"github.com/brendisurfs/alpaca-types/pkg/alpaca"
)

// Trade is the latest trade for one symbol. The short wire keys are the
// API's own.
type Trade struct {
	// ConditionFlags lists venue condition codes in the order the venue
	// issued them.
	ConditionFlags []string `json:"c"`
	TradeID        int64    `json:"i"`
	Price          float64  `json:"p"`
	Size           uint32   `json:"s"`
	Timestamp      string   `json:"t"`
	ExchangeCode   string   `json:"x"`
	Tape           string   `json:"z"`
}

// LatestTrades maps symbol to its most recent trade.
type LatestTrades struct {
	Trades map[string]Trade `json:"trades"`
}

// DecodeLatestTrades parses the latest-trades response body.
func DecodeLatestTrades(data []byte) (*LatestTrades, error) {
	var latest LatestTrades
	if err := json.Unmarshal(data, &latest); err != nil {
		return nil, alpaca.AsDecodeError(err)
	}
	return &latest, nil
}
