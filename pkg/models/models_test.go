package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedSum(t *testing.T) {
	t.Run("Mixed Signs", func(t *testing.T) {
		total, err := SignedSum([]PointsTransaction{
			{Amount: 50, Sign: POSITIVE},
			{Amount: 20, Sign: NEGATIVE},
			{Amount: 5, Sign: POSITIVE},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(35), total)
	})

	t.Run("At The Limit", func(t *testing.T) {
		total, err := SignedSum([]PointsTransaction{
			{Amount: math.MaxInt64 - 1, Sign: POSITIVE},
			{Amount: 1, Sign: POSITIVE},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), total)
	})

	t.Run("Positive Overflow", func(t *testing.T) {
		_, err := SignedSum([]PointsTransaction{
			{Id: "a", Amount: math.MaxInt64, Sign: POSITIVE},
			{Id: "b", Amount: math.MaxInt64, Sign: POSITIVE},
		})

		assert.ErrorIs(t, err, ErrBalanceOverflow)
	})

	t.Run("Negative Overflow", func(t *testing.T) {
		_, err := SignedSum([]PointsTransaction{
			{Id: "a", Amount: math.MaxInt64, Sign: NEGATIVE},
			{Id: "b", Amount: 2, Sign: NEGATIVE},
		})

		assert.ErrorIs(t, err, ErrBalanceOverflow)
	})
}
