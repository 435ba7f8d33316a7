package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("creates_order_id_from_store_string", func(t *testing.T) {
		id, err := kernel.NewOrderID("ord_8271")

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "ord_8271", id.String())
	})

	t.Run("rejects_empty_string", func(t *testing.T) {
		_, err := kernel.NewOrderID("")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrderID_IsEqual(t *testing.T) {
	a, err := kernel.NewOrderID("ord_1")
	require.NoError(t, err)
	b, err := kernel.NewOrderID("ord_1")
	require.NoError(t, err)
	c, err := kernel.NewOrderID("ord_2")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.OrderID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrderIDIsNotConstructed, err)
	})
}
