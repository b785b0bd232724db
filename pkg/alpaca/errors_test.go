package alpaca

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := unknownVariant("status", "warp_speed")
		assert.Contains(t, err.Error(), "unknown_variant")
		assert.Contains(t, err.Error(), `"status"`)
		assert.Contains(t, err.Error(), `"warp_speed"`)
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := invalidNumber("qty", "x", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("as", func(t *testing.T) {
		var de *DecodeError
		require.ErrorAs(t, malformedPayload(errors.New("bad json")), &de)
		assert.Equal(t, KindMalformedPayload, de.Kind)
	})
}

func TestAsDecodeError(t *testing.T) {
	t.Run("passes_through_untouched", func(t *testing.T) {
		orig := unknownVariant("side", "sideways")
		assert.Equal(t, orig, AsDecodeError(orig))
	})

	t.Run("classifies_foreign_errors", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := AsDecodeError(cause)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, KindMalformedPayload, de.Kind)
		assert.ErrorIs(t, err, cause)
	})
}

func TestDecodeAPIError(t *testing.T) {
	t.Run("parses", func(t *testing.T) {
		body := `{"code": 40310000, "message": "insufficient buying power"}`

		apiErr, err := DecodeAPIError([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, 40310000, apiErr.Code)
		assert.Equal(t, "insufficient buying power", apiErr.Message)
		assert.Contains(t, apiErr.Error(), "insufficient buying power")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeAPIError([]byte(`{"code": "not-an-object"`))
		require.Error(t, err)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, KindMalformedPayload, de.Kind)
	})
}
