package alpaca

import (
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"
)

// ParseRequired converts a mandatory stringly-typed numeric field. A value
// that does not parse is a hard decode failure; there is no default.
func ParseRequired(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, invalidNumber(field, value, err)
	}
	return f, nil
}

// ParseOptional converts an optional stringly-typed numeric field. A missing
// value stays missing; a present value parses with the same strictness as
// ParseRequired.
func ParseOptional(field string, value *string) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		return nil, invalidNumber(field, *value, err)
	}
	return &f, nil
}

// ParseOrZero converts a field the API is known to deliver empty. Empty and
// unparsable values both fall back to zero instead of failing; the fallback
// is deliberately lenient and applies only to fields documented as such.
func ParseOrZero(field, value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logx.Debugf("alpaca: lenient field %q: %q is not numeric, defaulting to 0", field, value)
		return 0
	}
	return f
}

// FormatQuantity renders a quantity the way the API expects it in request
// bodies: a decimal string in the shortest form that round-trips, so 10.0
// becomes "10".
func FormatQuantity(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// formatOptionalQuantity is FormatQuantity for fields that may be absent; nil
// stays nil so the wire key encodes as null.
func formatOptionalQuantity(f *float64) *string {
	if f == nil {
		return nil
	}
	s := FormatQuantity(*f)
	return &s
}
