package marketdata

import (
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/brendisurfs/alpaca-types/pkg/alpaca"
)

// CryptoBar is one OHLCV candlestick. Crypto bars carry fractional volume
// and a volume-weighted average price on top of the usual aggregates.
type CryptoBar struct {
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	TradeCount int64
	VWAP       float64
}

type cryptoBarWire struct {
	Timestamp  string  `json:"t"`
	Open       float64 `json:"o"`
	High       float64 `json:"h"`
	Low        float64 `json:"l"`
	Close      float64 `json:"c"`
	Volume     float64 `json:"v"`
	TradeCount int64   `json:"n"`
	VWAP       float64 `json:"vw"`
}

func (b *CryptoBar) UnmarshalJSON(data []byte) error {
	var wire cryptoBarWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return alpaca.AsDecodeError(err)
	}
	ts, err := time.Parse(time.RFC3339, wire.Timestamp)
	if err != nil {
		return &alpaca.DecodeError{
			Kind:  alpaca.KindInvalidTimestamp,
			Field: "t",
			Value: wire.Timestamp,
			Cause: err,
		}
	}
	*b = CryptoBar{
		Timestamp:  ts,
		Open:       wire.Open,
		High:       wire.High,
		Low:        wire.Low,
		Close:      wire.Close,
		Volume:     wire.Volume,
		TradeCount: wire.TradeCount,
		VWAP:       wire.VWAP,
	}
	return nil
}

func (b CryptoBar) MarshalJSON() ([]byte, error) {
	return json.Marshal(cryptoBarWire{
		Timestamp:  b.Timestamp.Format(time.RFC3339Nano),
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		TradeCount: b.TradeCount,
		VWAP:       b.VWAP,
	})
}

// LatestCryptoBars maps crypto symbol (e.g. "BTC/USD") to its latest
// minute-aggregated bar.
type LatestCryptoBars struct {
	Bars map[string]CryptoBar `json:"bars"`
}

// DecodeLatestCryptoBars parses the latest-crypto-bars response body.
func DecodeLatestCryptoBars(data []byte) (*LatestCryptoBars, error) {
	var latest LatestCryptoBars
	if err := json.Unmarshal(data, &latest); err != nil {
		return nil, alpaca.AsDecodeError(err)
	}
	return &latest, nil
}
