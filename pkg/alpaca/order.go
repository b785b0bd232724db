package alpaca

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

func (s *OrderSide) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	switch OrderSide(raw) {
	case OrderSideBuy, OrderSideSell:
		*s = OrderSide(raw)
		return nil
	}
	return unknownVariant("side", raw)
}

// OrderType selects how an order executes.
type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeLimit        OrderType = "limit"
	OrderTypeStop         OrderType = "stop"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	switch OrderType(raw) {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit, OrderTypeTrailingStop:
		*t = OrderType(raw)
		return nil
	}
	return unknownVariant("type", raw)
}

// TimeInForce controls how long an order stays active before the venue
// cancels it.
type TimeInForce string

const (
	TimeInForceDay TimeInForce = "day"
	TimeInForceGTC TimeInForce = "gtc"
	TimeInForceOPG TimeInForce = "opg"
	TimeInForceCLS TimeInForce = "cls"
	TimeInForceIOC TimeInForce = "ioc"
	TimeInForceFOK TimeInForce = "fok"
)

func (t *TimeInForce) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	switch TimeInForce(raw) {
	case TimeInForceDay, TimeInForceGTC, TimeInForceOPG, TimeInForceCLS, TimeInForceIOC, TimeInForceFOK:
		*t = TimeInForce(raw)
		return nil
	}
	return unknownVariant("time_in_force", raw)
}

// AssetClass identifies the nature of the traded instrument: "us_equity" for
// U.S. equities, "us_option" for U.S. options and "crypto" for
// cryptocurrencies.
type AssetClass string

const (
	AssetClassUSEquity AssetClass = "us_equity"
	AssetClassUSOption AssetClass = "us_option"
	AssetClassCrypto   AssetClass = "crypto"
)

func (c *AssetClass) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	switch AssetClass(raw) {
	case AssetClassUSEquity, AssetClassUSOption, AssetClassCrypto:
		*c = AssetClass(raw)
		return nil
	}
	return unknownVariant("asset_class", raw)
}

// OrderStatus tracks the full brokerage order lifecycle. An unrecognized
// status is a decode failure; mapping it to any valid variant would corrupt
// downstream order-state logic.
type OrderStatus string

const (
	OrderStatusNew                OrderStatus = "new"
	OrderStatusPartiallyFilled    OrderStatus = "partially_filled"
	OrderStatusFilled             OrderStatus = "filled"
	OrderStatusDoneForDay         OrderStatus = "done_for_day"
	OrderStatusCanceled           OrderStatus = "canceled"
	OrderStatusExpired            OrderStatus = "expired"
	OrderStatusReplaced           OrderStatus = "replaced"
	OrderStatusPendingCancel      OrderStatus = "pending_cancel"
	OrderStatusPendingReplace     OrderStatus = "pending_replace"
	OrderStatusAccepted           OrderStatus = "accepted"
	OrderStatusPendingNew         OrderStatus = "pending_new"
	OrderStatusAcceptedForBidding OrderStatus = "accepted_for_bidding"
	OrderStatusStopped            OrderStatus = "stopped"
	OrderStatusRejected           OrderStatus = "rejected"
	OrderStatusSuspended          OrderStatus = "suspended"
	OrderStatusCalculated         OrderStatus = "calculated"
)

var orderStatusTable = map[OrderStatus]struct{}{
	OrderStatusNew:                {},
	OrderStatusPartiallyFilled:    {},
	OrderStatusFilled:             {},
	OrderStatusDoneForDay:         {},
	OrderStatusCanceled:           {},
	OrderStatusExpired:            {},
	OrderStatusReplaced:           {},
	OrderStatusPendingCancel:      {},
	OrderStatusPendingReplace:     {},
	OrderStatusAccepted:           {},
	OrderStatusPendingNew:         {},
	OrderStatusAcceptedForBidding: {},
	OrderStatusStopped:            {},
	OrderStatusRejected:           {},
	OrderStatusSuspended:          {},
	OrderStatusCalculated:         {},
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformedPayload(err)
	}
	if _, ok := orderStatusTable[OrderStatus(raw)]; !ok {
		return unknownVariant("status", raw)
	}
	*s = OrderStatus(raw)
	return nil
}

// OrderRequest is the body sent to place an order. Quantity travels as a
// decimal string on the wire. This layer does not check positivity; what a
// sensible quantity is depends on the call being made.
type OrderRequest struct {
	Symbol      string
	Qty         float64
	Side        OrderSide
	OrderType   OrderType
	TimeInForce TimeInForce
}

type orderRequestWire struct {
	Symbol      string      `json:"symbol"`
	Qty         string      `json:"qty"`
	Side        OrderSide   `json:"side"`
	Type        OrderType   `json:"type"`
	TimeInForce TimeInForce `json:"time_in_force"`
}

func (r OrderRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderRequestWire{
		Symbol:      r.Symbol,
		Qty:         FormatQuantity(r.Qty),
		Side:        r.Side,
		Type:        r.OrderType,
		TimeInForce: r.TimeInForce,
	})
}

// EncodeOrderRequest serializes an order request for transport.
func EncodeOrderRequest(req OrderRequest) ([]byte, error) {
	return json.Marshal(req)
}

// OrderResponse is the order record the API returns after placement and on
// status queries. Exactly one of Notional and Qty is populated by API
// contract; decode does not enforce the exclusivity.
type OrderResponse struct {
	ID            uuid.UUID
	ClientOrderID string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt time.Time
	FilledAt    *time.Time
	ExpiredAt   *time.Time
	CanceledAt  *time.Time
	FailedAt    *time.Time
	ReplacedAt  *time.Time

	// ReplacedBy and Replaces link replacement orders by id.
	ReplacedBy *string
	Replaces   *string

	// AssetID is the asset identifier; for options it is the contract id.
	AssetID    uuid.UUID
	Symbol     string
	AssetClass AssetClass

	// Notional is the ordered dollar amount, up to 9 decimal places.
	Notional *string
	// Qty is the ordered quantity, up to 9 decimal places.
	Qty *float64

	FilledQty      string
	FilledAvgPrice *float64

	// OrderClass is one of simple, bracket, oco, oto.
	OrderClass  string
	OrderType   OrderType
	Side        OrderSide
	TimeInForce TimeInForce

	LimitPrice *float64
	StopPrice  *float64

	Status        OrderStatus
	ExtendedHours bool

	// Trailing-order fields are carried opaquely; they round-trip without
	// being interpreted.
	Legs         json.RawMessage
	TrailPercent json.RawMessage
	TrailPrice   json.RawMessage
	HWM          json.RawMessage
	Subtag       json.RawMessage
	Source       json.RawMessage

	// Extra holds wire fields this model does not name, so additions on the
	// API side survive a decode/encode cycle.
	Extra map[string]json.RawMessage
}

type orderResponseWire struct {
	ID             uuid.UUID       `json:"id"`
	ClientOrderID  string          `json:"client_order_id"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
	SubmittedAt    string          `json:"submitted_at"`
	FilledAt       *string         `json:"filled_at"`
	ExpiredAt      *string         `json:"expired_at"`
	CanceledAt     *string         `json:"canceled_at"`
	FailedAt       *string         `json:"failed_at"`
	ReplacedAt     *string         `json:"replaced_at"`
	ReplacedBy     *string         `json:"replaced_by"`
	Replaces       *string         `json:"replaces"`
	AssetID        uuid.UUID       `json:"asset_id"`
	Symbol         string          `json:"symbol"`
	AssetClass     AssetClass      `json:"asset_class"`
	Notional       *string         `json:"notional"`
	Qty            *string         `json:"qty"`
	FilledQty      string          `json:"filled_qty"`
	FilledAvgPrice *string         `json:"filled_avg_price"`
	OrderClass     string          `json:"order_class"`
	Type           OrderType       `json:"type"`
	Side           OrderSide       `json:"side"`
	TimeInForce    TimeInForce     `json:"time_in_force"`
	LimitPrice     *string         `json:"limit_price"`
	StopPrice      *string         `json:"stop_price"`
	Status         OrderStatus     `json:"status"`
	ExtendedHours  bool            `json:"extended_hours"`
	Legs           json.RawMessage `json:"legs"`
	TrailPercent   json.RawMessage `json:"trail_percent"`
	TrailPrice     json.RawMessage `json:"trail_price"`
	HWM            json.RawMessage `json:"hwm"`
	Subtag         json.RawMessage `json:"subtag"`
	Source         json.RawMessage `json:"source"`
}

// orderResponseFields lists every wire key the model names; anything else
// lands in Extra.
var orderResponseFields = []string{
	"id", "client_order_id",
	"created_at", "updated_at", "submitted_at",
	"filled_at", "expired_at", "canceled_at", "failed_at", "replaced_at",
	"replaced_by", "replaces",
	"asset_id", "symbol", "asset_class",
	"notional", "qty", "filled_qty", "filled_avg_price",
	"order_class", "type", "side", "time_in_force",
	"limit_price", "stop_price", "status", "extended_hours",
	"legs", "trail_percent", "trail_price", "hwm", "subtag", "source",
}

func (o *OrderResponse) UnmarshalJSON(data []byte) error {
	var wire orderResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return AsDecodeError(err)
	}

	// Enum fields are required; untouched zero values mean the key was absent.
	for _, req := range []struct {
		field string
		value string
	}{
		{"status", string(wire.Status)},
		{"side", string(wire.Side)},
		{"type", string(wire.Type)},
		{"time_in_force", string(wire.TimeInForce)},
		{"asset_class", string(wire.AssetClass)},
	} {
		if req.value == "" {
			return missingField(req.field)
		}
	}

	createdAt, err := parseTimestamp("created_at", wire.CreatedAt)
	if err != nil {
		return err
	}
	updatedAt, err := parseTimestamp("updated_at", wire.UpdatedAt)
	if err != nil {
		return err
	}
	submittedAt, err := parseTimestamp("submitted_at", wire.SubmittedAt)
	if err != nil {
		return err
	}
	filledAt, err := parseOptionalTimestamp("filled_at", wire.FilledAt)
	if err != nil {
		return err
	}
	expiredAt, err := parseOptionalTimestamp("expired_at", wire.ExpiredAt)
	if err != nil {
		return err
	}
	canceledAt, err := parseOptionalTimestamp("canceled_at", wire.CanceledAt)
	if err != nil {
		return err
	}
	failedAt, err := parseOptionalTimestamp("failed_at", wire.FailedAt)
	if err != nil {
		return err
	}
	replacedAt, err := parseOptionalTimestamp("replaced_at", wire.ReplacedAt)
	if err != nil {
		return err
	}

	qty, err := ParseOptional("qty", wire.Qty)
	if err != nil {
		return err
	}
	filledAvgPrice, err := ParseOptional("filled_avg_price", wire.FilledAvgPrice)
	if err != nil {
		return err
	}
	limitPrice, err := ParseOptional("limit_price", wire.LimitPrice)
	if err != nil {
		return err
	}
	stopPrice, err := ParseOptional("stop_price", wire.StopPrice)
	if err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return malformedPayload(err)
	}
	for _, name := range orderResponseFields {
		delete(fields, name)
	}
	if len(fields) == 0 {
		fields = nil
	}

	*o = OrderResponse{
		ID:             wire.ID,
		ClientOrderID:  wire.ClientOrderID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		SubmittedAt:    submittedAt,
		FilledAt:       filledAt,
		ExpiredAt:      expiredAt,
		CanceledAt:     canceledAt,
		FailedAt:       failedAt,
		ReplacedAt:     replacedAt,
		ReplacedBy:     wire.ReplacedBy,
		Replaces:       wire.Replaces,
		AssetID:        wire.AssetID,
		Symbol:         wire.Symbol,
		AssetClass:     wire.AssetClass,
		Notional:       wire.Notional,
		Qty:            qty,
		FilledQty:      wire.FilledQty,
		FilledAvgPrice: filledAvgPrice,
		OrderClass:     wire.OrderClass,
		OrderType:      wire.Type,
		Side:           wire.Side,
		TimeInForce:    wire.TimeInForce,
		LimitPrice:     limitPrice,
		StopPrice:      stopPrice,
		Status:         wire.Status,
		ExtendedHours:  wire.ExtendedHours,
		Legs:           wire.Legs,
		TrailPercent:   dropNull(wire.TrailPercent),
		TrailPrice:     dropNull(wire.TrailPrice),
		HWM:            dropNull(wire.HWM),
		Subtag:         dropNull(wire.Subtag),
		Source:         dropNull(wire.Source),
		Extra:          fields,
	}
	return nil
}

type orderResponseOut struct {
	ID             uuid.UUID       `json:"id"`
	ClientOrderID  string          `json:"client_order_id"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
	SubmittedAt    string          `json:"submitted_at"`
	FilledAt       *string         `json:"filled_at"`
	ExpiredAt      *string         `json:"expired_at"`
	CanceledAt     *string         `json:"canceled_at"`
	FailedAt       *string         `json:"failed_at"`
	ReplacedAt     *string         `json:"replaced_at"`
	ReplacedBy     *string         `json:"replaced_by"`
	Replaces       *string         `json:"replaces"`
	AssetID        uuid.UUID       `json:"asset_id"`
	Symbol         string          `json:"symbol"`
	AssetClass     AssetClass      `json:"asset_class"`
	Notional       *string         `json:"notional"`
	Qty            *string         `json:"qty"`
	FilledQty      string          `json:"filled_qty"`
	FilledAvgPrice *string         `json:"filled_avg_price"`
	OrderClass     string          `json:"order_class"`
	Type           OrderType       `json:"type"`
	Side           OrderSide       `json:"side"`
	TimeInForce    TimeInForce     `json:"time_in_force"`
	LimitPrice     *string         `json:"limit_price"`
	StopPrice      *string         `json:"stop_price"`
	Status         OrderStatus     `json:"status"`
	ExtendedHours  bool            `json:"extended_hours"`
	Legs           json.RawMessage `json:"legs"`
	TrailPercent   json.RawMessage `json:"trail_percent,omitempty"`
	TrailPrice     json.RawMessage `json:"trail_price,omitempty"`
	HWM            json.RawMessage `json:"hwm,omitempty"`
	Subtag         json.RawMessage `json:"subtag,omitempty"`
	Source         json.RawMessage `json:"source,omitempty"`
}

func (o OrderResponse) MarshalJSON() ([]byte, error) {
	legs := o.Legs
	if len(legs) == 0 {
		legs = json.RawMessage("null")
	}
	out := orderResponseOut{
		ID:             o.ID,
		ClientOrderID:  o.ClientOrderID,
		CreatedAt:      formatTimestamp(o.CreatedAt),
		UpdatedAt:      formatTimestamp(o.UpdatedAt),
		SubmittedAt:    formatTimestamp(o.SubmittedAt),
		FilledAt:       formatOptionalTimestamp(o.FilledAt),
		ExpiredAt:      formatOptionalTimestamp(o.ExpiredAt),
		CanceledAt:     formatOptionalTimestamp(o.CanceledAt),
		FailedAt:       formatOptionalTimestamp(o.FailedAt),
		ReplacedAt:     formatOptionalTimestamp(o.ReplacedAt),
		ReplacedBy:     o.ReplacedBy,
		Replaces:       o.Replaces,
		AssetID:        o.AssetID,
		Symbol:         o.Symbol,
		AssetClass:     o.AssetClass,
		Notional:       o.Notional,
		Qty:            formatOptionalQuantity(o.Qty),
		FilledQty:      o.FilledQty,
		FilledAvgPrice: formatOptionalQuantity(o.FilledAvgPrice),
		OrderClass:     o.OrderClass,
		Type:           o.OrderType,
		Side:           o.Side,
		TimeInForce:    o.TimeInForce,
		LimitPrice:     formatOptionalQuantity(o.LimitPrice),
		StopPrice:      formatOptionalQuantity(o.StopPrice),
		Status:         o.Status,
		ExtendedHours:  o.ExtendedHours,
		Legs:           legs,
		TrailPercent:   o.TrailPercent,
		TrailPrice:     o.TrailPrice,
		HWM:            o.HWM,
		Subtag:         o.Subtag,
		Source:         o.Source,
	}
	base, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	if len(o.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for name, value := range o.Extra {
		merged[name] = value
	}
	return json.Marshal(merged)
}

// DecodeOrderResponse parses an order record from raw response bytes.
func DecodeOrderResponse(data []byte) (*OrderResponse, error) {
	var order OrderResponse
	if err := order.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &order, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, invalidTimestamp(field, value, err)
	}
	return t, nil
}

func parseOptionalTimestamp(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseTimestamp(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func formatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

// dropNull normalizes an explicit JSON null into an absent value.
func dropNull(raw json.RawMessage) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
