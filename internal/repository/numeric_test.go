package repository

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericConversion(t *testing.T) {
	for _, v := range []string{"0", "99.99", "120", "0.01", "1234567890.12"} {
		t.Run(v, func(t *testing.T) {
			d := decimal.RequireFromString(v)

			got, err := numericToDecimal(decimalToNumeric(d))
			require.NoError(t, err)
			assert.True(t, d.Equal(got), "want %s, got %s", d, got)
		})
	}
}

func TestNumericToDecimal(t *testing.T) {
	t.Run("Should read scaled numeric", func(t *testing.T) {
		got, err := numericToDecimal(pgtype.Numeric{Int: big.NewInt(9999), Exp: -2, Valid: true})
		require.NoError(t, err)
		assert.Equal(t, "99.99", got.StringFixed(2))
	})

	t.Run("Should reject null", func(t *testing.T) {
		_, err := numericToDecimal(pgtype.Numeric{})
		assert.ErrorIs(t, err, errInvalidNumeric)
	})

	t.Run("Should reject NaN", func(t *testing.T) {
		_, err := numericToDecimal(pgtype.Numeric{NaN: true, Valid: true})
		assert.ErrorIs(t, err, errInvalidNumeric)
	})
}
