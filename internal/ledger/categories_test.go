package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
)

func TestPlanEnsureDefault(t *testing.T) {
	t.Run("empty snapshot plans exactly one default category", func(t *testing.T) {
		writes, created := PlanEnsureDefault(nil, testNow, sequentialIDs())
		require.Len(t, writes, 1)
		require.NotNil(t, created)
		assert.True(t, created.IsDefault)
		assert.Equal(t, DefaultCategoryName, created.Name)
	})

	t.Run("populated snapshot plans nothing", func(t *testing.T) {
		categories := []model.Category{{ID: "cat1", Name: "General", IsDefault: true}}

		writes, created := PlanEnsureDefault(categories, testNow, sequentialIDs())
		assert.Nil(t, writes)
		assert.Nil(t, created)
	})

	t.Run("reconciliation is idempotent across repeated snapshots", func(t *testing.T) {
		writes, created := PlanEnsureDefault(nil, testNow, sequentialIDs())
		require.Len(t, writes, 1)

		// Observe the repaired snapshot: nothing further is planned.
		again, _ := PlanEnsureDefault([]model.Category{*created}, testNow, sequentialIDs())
		assert.Nil(t, again)
	})
}

func TestPlanDeleteCategory(t *testing.T) {
	categories := []model.Category{
		{ID: "def", Name: "General", IsDefault: true},
		{ID: "travel", Name: "Travel"},
	}
	boards := []model.Board{
		{ID: "b1", Name: "Trip", CategoryID: "travel", Status: model.BoardActive},
		{ID: "b2", Name: "Main", CategoryID: "def", Status: model.BoardActive},
		{ID: "b3", Name: "Hotel fund", CategoryID: "travel", Status: model.BoardClosed},
	}

	t.Run("boards move to the default category in the same batch", func(t *testing.T) {
		writes, err := PlanDeleteCategory(categories, boards, "travel")
		require.NoError(t, err)
		require.Len(t, writes, 3)

		moved := 0
		for _, w := range writes[:2] {
			require.Equal(t, service.OpUpdate, w.Op)
			require.NotNil(t, w.Board)
			assert.Equal(t, "def", w.Board.CategoryID)
			moved++
		}
		assert.Equal(t, 2, moved)

		last := writes[2]
		assert.Equal(t, service.OpDelete, last.Op)
		assert.Equal(t, service.Categories, last.Collection)
		assert.Equal(t, "travel", last.ID)
	})

	t.Run("category without boards deletes cleanly", func(t *testing.T) {
		writes, err := PlanDeleteCategory(categories, nil, "travel")
		require.NoError(t, err)
		require.Len(t, writes, 1)
		assert.Equal(t, service.OpDelete, writes[0].Op)
	})

	t.Run("default category is never deletable", func(t *testing.T) {
		_, err := PlanDeleteCategory(categories, boards, "def")
		assert.ErrorIs(t, err, ErrDefaultCategory)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		_, err := PlanDeleteCategory(categories, boards, "nope")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("missing default is surfaced", func(t *testing.T) {
		broken := []model.Category{{ID: "travel", Name: "Travel"}}
		_, err := PlanDeleteCategory(broken, boards, "travel")
		assert.ErrorIs(t, err, ErrNoDefaultCategory)
	})
}
