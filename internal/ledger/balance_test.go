package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Thys1a/WebAccounting/internal/model"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBalance(t *testing.T) {
	txns := []model.Transaction{
		{ID: "t1", BoardID: "b1", Amount: amt("100")},
		{ID: "t2", BoardID: "b2", Amount: amt("999")},
		{ID: "t3", BoardID: "b1", Amount: amt("-30.25")},
		{ID: "t4", BoardID: "b1", Amount: amt("0.25")},
	}

	assert.True(t, Balance(txns, "b1").Equal(amt("70")))
	assert.True(t, Balance(txns, "b2").Equal(amt("999")))
	assert.True(t, Balance(txns, "missing").IsZero())
}

func TestBalanceIsOrderIndependent(t *testing.T) {
	forward := []model.Transaction{
		{ID: "t1", BoardID: "b", Amount: amt("10")},
		{ID: "t2", BoardID: "b", Amount: amt("-3.33")},
		{ID: "t3", BoardID: "b", Amount: amt("7.77")},
	}
	reversed := []model.Transaction{forward[2], forward[1], forward[0]}

	assert.True(t, Balance(forward, "b").Equal(Balance(reversed, "b")))
}

func TestBalancePredicates(t *testing.T) {
	assert.True(t, Surplus(amt("0.01")))
	assert.False(t, Surplus(amt("0")))
	assert.True(t, Deficit(amt("-0.01")))
	assert.False(t, Deficit(amt("0")))
	assert.True(t, Settled(amt("0")))
	assert.False(t, Settled(amt("-5")))
}
