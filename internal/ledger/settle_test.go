package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
)

func settleFixture() []model.Board {
	return []model.Board{
		{ID: "p1", Name: "Main", CategoryID: "cat1", Status: model.BoardActive},
		{ID: "c1", Name: "Trip", CategoryID: "cat1", ParentID: "p1", Status: model.BoardActive},
		{ID: "closed1", Name: "Done", CategoryID: "cat1", ParentID: "p1", Status: model.BoardClosed},
		{ID: "solo", Name: "Solo", CategoryID: "cat1", Status: model.BoardActive},
	}
}

func TestPlanSettlement(t *testing.T) {
	t.Run("surplus flows back as return pair", func(t *testing.T) {
		txns := []model.Transaction{
			{ID: "t1", BoardID: "c1", Amount: amt("300"), Type: model.TypeAllocationIn},
			{ID: "t2", BoardID: "c1", Amount: amt("-250"), Type: model.TypeNormal},
		}

		writes, result, err := PlanSettlement(settleFixture(), txns, "c1", testNow, sequentialIDs())
		require.NoError(t, err)
		require.Len(t, writes, 3)
		assert.True(t, result.Balance.Equal(amt("50")))

		childLeg := writes[0].Transaction
		parentLeg := writes[1].Transaction
		require.NotNil(t, childLeg)
		require.NotNil(t, parentLeg)

		assert.Equal(t, model.TypeReturnOut, childLeg.Type)
		assert.Equal(t, "c1", childLeg.BoardID)
		assert.True(t, childLeg.Amount.Equal(amt("-50")))
		assert.Equal(t, "p1", childLeg.LinkedBoardID)

		assert.Equal(t, model.TypeReturnIn, parentLeg.Type)
		assert.Equal(t, "p1", parentLeg.BoardID)
		assert.True(t, parentLeg.Amount.Equal(amt("50")))
		assert.Equal(t, "c1", parentLeg.LinkedBoardID)

		// Applying the child leg zeroes the child's balance.
		assert.True(t, Balance(append(txns, *childLeg), "c1").IsZero())

		board := writes[2].Board
		require.NotNil(t, board)
		assert.Equal(t, model.BoardClosed, board.Status)
		assert.Equal(t, service.OpUpdate, writes[2].Op)
	})

	t.Run("deficit is covered by the parent", func(t *testing.T) {
		txns := []model.Transaction{
			{ID: "t1", BoardID: "c1", Amount: amt("100"), Type: model.TypeAllocationIn},
			{ID: "t2", BoardID: "c1", Amount: amt("-120"), Type: model.TypeNormal},
		}

		writes, result, err := PlanSettlement(settleFixture(), txns, "c1", testNow, sequentialIDs())
		require.NoError(t, err)
		require.Len(t, writes, 3)
		assert.True(t, result.Balance.Equal(amt("-20")))

		childLeg := writes[0].Transaction
		parentLeg := writes[1].Transaction

		assert.Equal(t, model.TypeCoverIn, childLeg.Type)
		assert.True(t, childLeg.Amount.Equal(amt("20")))
		assert.Equal(t, model.TypeCoverOut, parentLeg.Type)
		assert.True(t, parentLeg.Amount.Equal(amt("-20")))

		assert.True(t, Balance(append(txns, *childLeg), "c1").IsZero())
	})

	t.Run("zero balance closes the board with no transactions", func(t *testing.T) {
		txns := []model.Transaction{
			{ID: "t1", BoardID: "c1", Amount: amt("80"), Type: model.TypeAllocationIn},
			{ID: "t2", BoardID: "c1", Amount: amt("-80"), Type: model.TypeNormal},
		}

		writes, result, err := PlanSettlement(settleFixture(), txns, "c1", testNow, sequentialIDs())
		require.NoError(t, err)
		require.Len(t, writes, 1)
		assert.True(t, result.Balance.IsZero())

		require.NotNil(t, writes[0].Board)
		assert.Equal(t, model.BoardClosed, writes[0].Board.Status)
	})

	t.Run("settling a closed board is rejected", func(t *testing.T) {
		_, _, err := PlanSettlement(settleFixture(), nil, "closed1", testNow, sequentialIDs())
		assert.ErrorIs(t, err, ErrBoardClosed)
	})

	t.Run("settling a parentless board is rejected", func(t *testing.T) {
		_, _, err := PlanSettlement(settleFixture(), nil, "solo", testNow, sequentialIDs())
		assert.ErrorIs(t, err, ErrNoParent)
	})

	t.Run("unknown board is rejected", func(t *testing.T) {
		_, _, err := PlanSettlement(settleFixture(), nil, "nope", testNow, sequentialIDs())
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("missing parent is rejected", func(t *testing.T) {
		boards := []model.Board{
			{ID: "c1", Name: "Orphan", CategoryID: "cat1", ParentID: "gone", Status: model.BoardActive},
		}
		_, _, err := PlanSettlement(boards, nil, "c1", testNow, sequentialIDs())
		assert.ErrorIs(t, err, ErrParentNotFound)
	})
}
