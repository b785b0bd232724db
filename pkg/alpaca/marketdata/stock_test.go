package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendisurfs/alpaca-types/pkg/alpaca"
)

func TestDecodeLatestTrades(t *testing.T) {
	t.Run("single_symbol", func(t *testing.T) {
		body := `
		{
		    "trades": {
		        "AAPL": {
		            "t": "2022-08-17T09:50:43.361102308Z",
		            "x": "Q",
		            "p": 172.78,
		            "s": 100,
		            "c": ["@", "F", "T"],
		            "i": 826,
		            "z": "C"
		        }
		    }
		}`

		latest, err := DecodeLatestTrades([]byte(body))
		require.NoError(t, err)
		require.Contains(t, latest.Trades, "AAPL")

		trade := latest.Trades["AAPL"]
		assert.Equal(t, int64(826), trade.TradeID)
		assert.Equal(t, 172.78, trade.Price)
		assert.Equal(t, uint32(100), trade.Size)
		assert.Equal(t, "2022-08-17T09:50:43.361102308Z", trade.Timestamp)
		assert.Equal(t, "Q", trade.ExchangeCode)
		assert.Equal(t, "C", trade.Tape)
		// Condition flags keep the venue's issue order.
		assert.Equal(t, []string{"@", "F", "T"}, trade.ConditionFlags)
	})

	t.Run("multiple_symbols", func(t *testing.T) {
		body := `
		{
		    "trades": {
		        "AAPL": {"t": "2022-08-17T09:50:43Z", "x": "Q", "p": 172.78, "s": 100, "c": [], "i": 1, "z": "C"},
		        "TSLA": {"t": "2022-08-17T09:50:44Z", "x": "V", "p": 919.5, "s": 10, "c": ["@"], "i": 2, "z": "A"}
		    }
		}`

		latest, err := DecodeLatestTrades([]byte(body))
		require.NoError(t, err)
		assert.Len(t, latest.Trades, 2)
		assert.Equal(t, 919.5, latest.Trades["TSLA"].Price)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeLatestTrades([]byte(`{"trades": [1, 2, 3]}`))
		require.Error(t, err)

		var de *alpaca.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, alpaca.KindMalformedPayload, de.Kind)
	})
}
