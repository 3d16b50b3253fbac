package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thys1a/WebAccounting/internal/service"
)

func TestSubscribeReceivesCommittedSnapshots(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	snapshots, cancel := store.Subscribe(ctx, "u1", service.Boards)
	defer cancel()

	require.NoError(t, store.SubmitBatch(ctx, "u1", []service.Write{
		service.CreateBoard(testBoard("b1", "Main")),
	}))

	select {
	case snap := <-snapshots:
		assert.Equal(t, service.Boards, snap.Collection)
		require.Len(t, snap.Boards, 1)
		assert.Equal(t, "b1", snap.Boards[0].ID)
		assert.NotZero(t, snap.Seq)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered after commit")
	}
}

func TestSubscribeConflatesUnderBackpressure(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	snapshots, cancel := store.Subscribe(ctx, "u1", service.Boards)
	defer cancel()

	// Two commits without a read in between: the pending snapshot is
	// replaced, so the next receive sees the latest state.
	require.NoError(t, store.SubmitBatch(ctx, "u1", []service.Write{
		service.CreateBoard(testBoard("b1", "First")),
	}))
	require.NoError(t, store.SubmitBatch(ctx, "u1", []service.Write{
		service.CreateBoard(testBoard("b2", "Second")),
	}))

	select {
	case snap := <-snapshots:
		assert.Len(t, snap.Boards, 2, "conflated subscriber sees the latest snapshot")
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestSubscribeScoping(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	otherUser, cancelUser := store.Subscribe(ctx, "bob", service.Boards)
	defer cancelUser()
	otherCollection, cancelCol := store.Subscribe(ctx, "u1", service.Transactions)
	defer cancelCol()

	require.NoError(t, store.SubmitBatch(ctx, "u1", []service.Write{
		service.CreateBoard(testBoard("b1", "Main")),
	}))

	select {
	case <-otherUser:
		t.Fatal("subscriber for another user must not be notified")
	case <-otherCollection:
		t.Fatal("subscriber for another collection must not be notified")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeCancel(t *testing.T) {
	store := createTestStore(t)

	snapshots, cancel := store.Subscribe(context.Background(), "u1", service.Boards)
	cancel()

	_, open := <-snapshots
	assert.False(t, open, "cancel closes the snapshot channel")

	// Cancel twice is harmless.
	cancel()
}

func TestSubscribeContextCancellation(t *testing.T) {
	store := createTestStore(t)

	ctx, cancelCtx := context.WithCancel(context.Background())
	snapshots, cancel := store.Subscribe(ctx, "u1", service.Boards)
	defer cancel()

	cancelCtx()

	select {
	case _, open := <-snapshots:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("context cancellation did not end the subscription")
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir() + "/test.db")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	snapshots, cancel := store.Subscribe(context.Background(), "u1", service.Categories)
	defer cancel()

	require.NoError(t, store.Close())

	_, open := <-snapshots
	assert.False(t, open, "closing the store closes subscriptions")
}
