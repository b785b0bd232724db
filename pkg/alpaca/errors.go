package alpaca

import (
	"errors"
	"fmt"

	"github.com/segmentio/encoding/json"
)

// ErrKind classifies why a decode failed.
type ErrKind string

const (
	// KindInvalidNumber marks a non-empty numeric string that failed to parse.
	KindInvalidNumber ErrKind = "invalid_number"
	// KindInvalidTimestamp marks a date-time that failed to parse or is out of range.
	KindInvalidTimestamp ErrKind = "invalid_timestamp"
	// KindUnknownVariant marks an enumeration string outside its fixed wire table.
	KindUnknownVariant ErrKind = "unknown_variant"
	// KindMalformedPayload marks a structural JSON mismatch.
	KindMalformedPayload ErrKind = "malformed_payload"
)

// DecodeError reports why a wire payload could not be converted into a typed
// value. Field and Value carry the offending wire field and its raw content
// when they are known.
type DecodeError struct {
	Kind  ErrKind
	Field string
	Value string
	Cause error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("alpaca: %s", e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func invalidNumber(field, value string, cause error) error {
	return &DecodeError{Kind: KindInvalidNumber, Field: field, Value: value, Cause: cause}
}

func invalidTimestamp(field, value string, cause error) error {
	return &DecodeError{Kind: KindInvalidTimestamp, Field: field, Value: value, Cause: cause}
}

func unknownVariant(field, value string) error {
	return &DecodeError{Kind: KindUnknownVariant, Field: field, Value: value}
}

func malformedPayload(cause error) error {
	return &DecodeError{Kind: KindMalformedPayload, Cause: cause}
}

func missingField(field string) error {
	return &DecodeError{Kind: KindMalformedPayload, Field: field, Cause: errors.New("required field missing")}
}

// AsDecodeError passes an existing DecodeError through untouched and wraps
// anything else as a malformed payload. Decoders layered on top of this
// package use it to classify errors without double-wrapping.
func AsDecodeError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return malformedPayload(err)
}

// APIError is the body the API returns alongside a non-2xx status. The
// transport layer decides when a response holds this shape instead of the
// expected payload; decode itself never branches on status.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alpaca: api error %d: %s", e.Code, e.Message)
}

// DecodeAPIError parses the {code, message} error body.
func DecodeAPIError(data []byte) (*APIError, error) {
	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return nil, malformedPayload(err)
	}
	return &apiErr, nil
}
