package marketdata

import (
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendisurfs/alpaca-types/pkg/alpaca"
)

func TestDecodeLatestCryptoBars(t *testing.T) {
	t.Run("single_symbol", func(t *testing.T) {
		body := `
		{
		    "bars": {
		        "BTC/USD": {
		            "t": "2022-05-27T10:18:00Z",
		            "o": 28999,
		            "h": 29003,
		            "l": 28999,
		            "c": 29003,
		            "v": 0.01,
		            "n": 4,
		            "vw": 29001
		        }
		    }
		}`

		latest, err := DecodeLatestCryptoBars([]byte(body))
		require.NoError(t, err)
		require.Contains(t, latest.Bars, "BTC/USD")

		bar := latest.Bars["BTC/USD"]
		want, _ := time.Parse(time.RFC3339, "2022-05-27T10:18:00Z")
		assert.True(t, bar.Timestamp.Equal(want))
		assert.Equal(t, 28999.0, bar.Open)
		assert.Equal(t, 29003.0, bar.High)
		assert.Equal(t, 28999.0, bar.Low)
		assert.Equal(t, 29003.0, bar.Close)
		assert.Equal(t, 0.01, bar.Volume)
		assert.Equal(t, int64(4), bar.TradeCount)
		assert.Equal(t, 29001.0, bar.VWAP)
	})

	t.Run("bad_timestamp", func(t *testing.T) {
		body := `
		{
		    "bars": {
		        "BTC/USD": {
		            "t": "yesterday",
		            "o": 28999, "h": 29003, "l": 28999, "c": 29003,
		            "v": 0.01, "n": 4, "vw": 29001
		        }
		    }
		}`

		_, err := DecodeLatestCryptoBars([]byte(body))
		require.Error(t, err)

		var de *alpaca.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, alpaca.KindInvalidTimestamp, de.Kind)
		assert.Equal(t, "t", de.Field)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeLatestCryptoBars([]byte(`not json at all`))
		require.Error(t, err)

		var de *alpaca.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, alpaca.KindMalformedPayload, de.Kind)
	})
}

func TestCryptoBarRoundTrip(t *testing.T) {
	bar := CryptoBar{
		Timestamp:  time.Date(2022, 5, 27, 10, 18, 0, 0, time.UTC),
		Open:       28999,
		High:       29003,
		Low:        28999,
		Close:      29003,
		Volume:     0.01,
		TradeCount: 4,
		VWAP:       29001,
	}

	encoded, err := json.Marshal(bar)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"t":"2022-05-27T10:18:00Z"`)

	var again CryptoBar
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.True(t, bar.Timestamp.Equal(again.Timestamp))
	assert.Equal(t, bar.Volume, again.Volume)
}
