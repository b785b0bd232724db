package alpaca

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioHistoryFixture = `
{
    "timestamp": [1722000600, 1722004200, 1722007800, 1722011400, 1722015000, 1722018600, 1722022200],
    "equity": [100129.67, 100129.67, 100129.67, 100129.67, 100129.67, 100129.67, 100129.67],
    "profit_loss": [0, 0, 0, 0, 0, 0, 0],
    "profit_loss_pct": [0, 0, 0, 0, 0, 0, 0],
    "base_value": 100129.67,
    "base_value_asof": "2024-07-25",
    "timeframe": "1H"
}
`

func TestDecodePortfolioHistory(t *testing.T) {
	history, err := DecodePortfolioHistory([]byte(portfolioHistoryFixture))
	require.NoError(t, err)

	assert.Len(t, history.Timestamp, 7)
	assert.Len(t, history.Equity, 7)
	assert.Equal(t, 100129.67, history.BaseValue)
	assert.Equal(t, "2024-07-25", history.BaseValueAsOf)
	assert.Equal(t, "1H", history.Timeframe)

	_, err = DecodePortfolioHistory([]byte(`{"timestamp": "not-an-array"}`))
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindMalformedPayload, de.Kind)
}

func TestToFrames(t *testing.T) {
	t.Run("aligned_arrays", func(t *testing.T) {
		history, err := DecodePortfolioHistory([]byte(portfolioHistoryFixture))
		require.NoError(t, err)

		frames, err := history.ToFrames()
		require.NoError(t, err)
		require.Len(t, frames, 7)

		for idx, frame := range frames {
			assert.Equal(t, time.Unix(history.Timestamp[idx], 0).UTC(), frame.Time)
			assert.Equal(t, 100129.67, frame.Equity)
			assert.Equal(t, 0.0, frame.ProfitLoss)
			assert.Equal(t, 0.0, frame.ProfitLossPercent)
			assert.Equal(t, history.BaseValue, frame.BaseValue)
			assert.Equal(t, history.BaseValueAsOf, frame.BaseValueAsOf)
		}

		// Chronological input order is preserved.
		for idx := 1; idx < len(frames); idx++ {
			assert.True(t, frames[idx].Time.After(frames[idx-1].Time))
		}
	})

	t.Run("ragged_trailing_arrays_skip", func(t *testing.T) {
		// The API sometimes truncates the value arrays before the timestamp
		// array. Indices past any array's bound are skipped, not an error.
		history := &PortfolioHistory{
			Timestamp:     []int64{1722000600, 1722004200, 1722007800},
			Equity:        []float64{100.0, 101.0},
			ProfitLoss:    []float64{0, 1.0, 2.0},
			ProfitLossPct: []float64{0, 0.01, 0.02},
			BaseValue:     100.0,
			BaseValueAsOf: "2024-07-25",
		}

		frames, err := history.ToFrames()
		require.NoError(t, err)
		require.Len(t, frames, 2)
		assert.Equal(t, 101.0, frames[1].Equity)
	})

	t.Run("mid_array_truncation", func(t *testing.T) {
		history := &PortfolioHistory{
			Timestamp:     []int64{1722000600, 1722004200, 1722007800},
			Equity:        []float64{100.0, 101.0, 102.0},
			ProfitLoss:    []float64{0},
			ProfitLossPct: []float64{0, 0.01, 0.02},
		}

		frames, err := history.ToFrames()
		require.NoError(t, err)
		require.Len(t, frames, 1)
	})

	t.Run("out_of_range_timestamp_fails", func(t *testing.T) {
		history := &PortfolioHistory{
			Timestamp:     []int64{1722000600, maxFrameUnix + 1},
			Equity:        []float64{100.0, 101.0},
			ProfitLoss:    []float64{0, 0},
			ProfitLossPct: []float64{0, 0},
		}

		_, err := history.ToFrames()
		require.Error(t, err)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, KindInvalidTimestamp, de.Kind)
	})

	t.Run("empty_history", func(t *testing.T) {
		frames, err := (&PortfolioHistory{}).ToFrames()
		require.NoError(t, err)
		assert.Empty(t, frames)
	})
}
