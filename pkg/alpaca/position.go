package alpaca

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

// PositionSide marks a position as long or short.
type PositionSide string

const (
	PositionSideLong  PositionSide = "long"
	PositionSideShort PositionSide = "short"
)

func (s *PositionSide) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	switch PositionSide(raw) {
	case PositionSideLong, PositionSideShort:
		*s = PositionSide(raw)
		return nil
	}
	return unknownVariant("side", raw)
}

// OpenPosition is one open position as reported by the API. All money and
// quantity fields arrive as decimal strings. The sign of Qty carries the
// long/short magnitude independently of Side; the two agree by API contract
// and are not cross-validated here.
type OpenPosition struct {
	AssetID    uuid.UUID
	Symbol     string
	Exchange   string
	AssetClass AssetClass
	Side       PositionSide

	AvgEntryPrice *float64
	Qty           float64
	QtyAvailable  float64

	MarketValue  float64
	CostBasis    float64
	UnrealizedPL float64
	// UnrealizedPLPC is the unrealized profit/loss as a fraction of cost basis.
	UnrealizedPLPC       float64
	UnrealizedIntradayPL float64
	// UnrealizedIntradayPLPC has been observed to arrive empty; it decodes
	// leniently and falls back to zero.
	UnrealizedIntradayPLPC float64

	CurrentPrice float64
	LastdayPrice float64
	ChangeToday  float64

	AssetMarginable bool
}

type openPositionWire struct {
	AssetID                uuid.UUID    `json:"asset_id"`
	Symbol                 string       `json:"symbol"`
	Exchange               string       `json:"exchange"`
	AssetClass             AssetClass   `json:"asset_class"`
	AvgEntryPrice          *string      `json:"avg_entry_price"`
	Qty                    string       `json:"qty"`
	QtyAvailable           string       `json:"qty_available"`
	Side                   PositionSide `json:"side"`
	MarketValue            string       `json:"market_value"`
	CostBasis              string       `json:"cost_basis"`
	UnrealizedPL           string       `json:"unrealized_pl"`
	UnrealizedPLPC         string       `json:"unrealized_plpc"`
	UnrealizedIntradayPL   string       `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC string       `json:"unrealized_intraday_plpc"`
	CurrentPrice           string       `json:"current_price"`
	LastdayPrice           string       `json:"lastday_price"`
	ChangeToday            string       `json:"change_today"`
	AssetMarginable        bool         `json:"asset_marginable"`
}

func (p *OpenPosition) UnmarshalJSON(data []byte) error {
	var wire openPositionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return AsDecodeError(err)
	}
	if wire.Side == "" {
		return missingField("side")
	}
	if wire.AssetClass == "" {
		return missingField("asset_class")
	}

	avgEntryPrice, err := ParseOptional("avg_entry_price", wire.AvgEntryPrice)
	if err != nil {
		return err
	}

	required := []struct {
		field string
		value string
		dst   *float64
	}{
		{"qty", wire.Qty, &p.Qty},
		{"qty_available", wire.QtyAvailable, &p.QtyAvailable},
		{"market_value", wire.MarketValue, &p.MarketValue},
		{"cost_basis", wire.CostBasis, &p.CostBasis},
		{"unrealized_pl", wire.UnrealizedPL, &p.UnrealizedPL},
		{"unrealized_plpc", wire.UnrealizedPLPC, &p.UnrealizedPLPC},
		{"unrealized_intraday_pl", wire.UnrealizedIntradayPL, &p.UnrealizedIntradayPL},
		{"current_price", wire.CurrentPrice, &p.CurrentPrice},
		{"lastday_price", wire.LastdayPrice, &p.LastdayPrice},
		{"change_today", wire.ChangeToday, &p.ChangeToday},
	}
	for _, conv := range required {
		if conv.value == "" {
			*p = OpenPosition{}
			return missingField(conv.field)
		}
		f, err := ParseRequired(conv.field, conv.value)
		if err != nil {
			*p = OpenPosition{}
			return err
		}
		*conv.dst = f
	}

	p.AssetID = wire.AssetID
	p.Symbol = wire.Symbol
	p.Exchange = wire.Exchange
	p.AssetClass = wire.AssetClass
	p.Side = wire.Side
	p.AvgEntryPrice = avgEntryPrice
	p.UnrealizedIntradayPLPC = ParseOrZero("unrealized_intraday_plpc", wire.UnrealizedIntradayPLPC)
	p.AssetMarginable = wire.AssetMarginable
	return nil
}

// MarshalJSON re-encodes every numeric field as a decimal string so a
// position round-trips through local state in the exact shape the API
// delivers it; decode and encode share openPositionWire.
func (p OpenPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal(openPositionWire{
		AssetID:                p.AssetID,
		Symbol:                 p.Symbol,
		Exchange:               p.Exchange,
		AssetClass:             p.AssetClass,
		AvgEntryPrice:          formatOptionalQuantity(p.AvgEntryPrice),
		Qty:                    FormatQuantity(p.Qty),
		QtyAvailable:           FormatQuantity(p.QtyAvailable),
		Side:                   p.Side,
		MarketValue:            FormatQuantity(p.MarketValue),
		CostBasis:              FormatQuantity(p.CostBasis),
		UnrealizedPL:           FormatQuantity(p.UnrealizedPL),
		UnrealizedPLPC:         FormatQuantity(p.UnrealizedPLPC),
		UnrealizedIntradayPL:   FormatQuantity(p.UnrealizedIntradayPL),
		UnrealizedIntradayPLPC: FormatQuantity(p.UnrealizedIntradayPLPC),
		CurrentPrice:           FormatQuantity(p.CurrentPrice),
		LastdayPrice:           FormatQuantity(p.LastdayPrice),
		ChangeToday:            FormatQuantity(p.ChangeToday),
		AssetMarginable:        p.AssetMarginable,
	})
}

// DecodeOpenPosition parses a single open-position record.
func DecodeOpenPosition(data []byte) (*OpenPosition, error) {
	var pos OpenPosition
	if err := pos.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &pos, nil
}

// DecodeOpenPositions parses the list returned by the positions endpoint.
func DecodeOpenPositions(data []byte) ([]OpenPosition, error) {
	var positions []OpenPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, AsDecodeError(err)
	}
	return positions, nil
}

// StatusCode is the per-position status in a close-all response. Live API
// behavior and the documentation disagree on whether it is a JSON number or
// a numeric string, so decode accepts both rather than guessing.
type StatusCode int

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = StatusCode(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return invalidNumber("status", raw, err)
	}
	*s = StatusCode(n)
	return nil
}

// ClosedPosition reports the outcome of closing one position: the HTTP-style
// status for that symbol and the order the venue created to flatten it.
type ClosedPosition struct {
	Symbol string        `json:"symbol"`
	Status StatusCode    `json:"status"`
	Body   OrderResponse `json:"body"`
}

// CloseAllPositionsResponse is the per-symbol outcome list from the
// close-all-positions endpoint.
type CloseAllPositionsResponse []ClosedPosition

// DecodeCloseAllPositions parses the close-all-positions response body.
func DecodeCloseAllPositions(data []byte) (CloseAllPositionsResponse, error) {
	var resp CloseAllPositionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, AsDecodeError(err)
	}
	return resp, nil
}
