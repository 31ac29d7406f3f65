package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	t.Run("合计金额由明细计算", func(t *testing.T) {
		tx := NewTransaction(1, []Item{
			{BookID: 1, Quantity: 2, Price: 8900},
			{BookID: 2, Quantity: 1, Price: 12500},
		})

		assert.Equal(t, uint(1), tx.UserID)
		assert.Equal(t, int64(30300), tx.Total)
		assert.False(t, tx.CreatedAt.IsZero())
	})

	t.Run("空明细合计为零", func(t *testing.T) {
		tx := NewTransaction(1, nil)
		assert.Equal(t, int64(0), tx.Total)
	})
}

func TestItemSubtotal(t *testing.T) {
	item := Item{Quantity: 3, Price: 4500}
	assert.Equal(t, int64(13500), item.Subtotal())
}

func TestCalculateTotal(t *testing.T) {
	// Total是创建时刻的冗余快照：修改明细后Total不自动重算
	tx := NewTransaction(1, []Item{{BookID: 1, Quantity: 1, Price: 1000}})
	tx.Items[0].Quantity = 5

	assert.Equal(t, int64(1000), tx.Total)
	assert.Equal(t, int64(5000), tx.CalculateTotal())
}

func TestIsOwnedBy(t *testing.T) {
	tx := NewTransaction(7, nil)

	assert.True(t, tx.IsOwnedBy(7))
	assert.False(t, tx.IsOwnedBy(8))
}
