package balance

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var system = access.ForSystem("test")

func appendTx(t *testing.T, store *memory.Store, subjectID string, amount int64, sign models.Sign) {
	t.Helper()
	err := store.AppendTransaction(context.Background(), &models.PointsTransaction{
		Id:        uuid.New().String(),
		SubjectId: subjectID,
		Amount:    amount,
		Sign:      sign,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestRecompute(t *testing.T) {
	t.Run("Signed Sum Regardless Of Order", func(t *testing.T) {
		orders := [][]int64{{50, -20, 5}, {-20, 5, 50}, {5, 50, -20}}
		for _, order := range orders {
			store := memory.NewStore()
			for _, v := range order {
				if v < 0 {
					appendTx(t, store, "s", -v, models.NEGATIVE)
				} else {
					appendTx(t, store, "s", v, models.POSITIVE)
				}
			}

			points, err := NewEngine(store, store).Recompute(context.Background(), system, "s")

			require.NoError(t, err)
			assert.Equal(t, int64(35), points)
		}
	})

	t.Run("Out Of Range Total", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", math.MaxInt64, models.POSITIVE)
		appendTx(t, store, "s", math.MaxInt64, models.POSITIVE)
		engine := NewEngine(store, store)

		_, err := engine.Recompute(context.Background(), system, "s")
		assert.ErrorIs(t, err, models.ErrBalanceOverflow)

		record, err := engine.Sync(context.Background(), system, "s", true)
		assert.ErrorIs(t, err, models.ErrBalanceOverflow)
		assert.Nil(t, record)
		_, err = store.GetBalance(context.Background(), "s")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Empty Ledger", func(t *testing.T) {
		store := memory.NewStore()

		points, err := NewEngine(store, store).Recompute(context.Background(), system, "nobody")

		require.NoError(t, err)
		assert.Zero(t, points)
	})

	t.Run("Does Not Write Cache", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 4, models.POSITIVE)

		_, err := NewEngine(store, store).Recompute(context.Background(), system, "s")
		require.NoError(t, err)

		_, err = store.GetBalance(context.Background(), "s")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Missing Record", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 50, models.POSITIVE)
		appendTx(t, store, "s", 20, models.NEGATIVE)
		engine := NewEngine(store, store)

		record, err := engine.Sync(ctx, system, "s", false)

		require.NoError(t, err)
		assert.Equal(t, int64(30), record.Points)
		assert.Equal(t, int64(2), record.TransactionCount)
		cached, err := engine.Read(ctx, system, "s")
		require.NoError(t, err)
		assert.Equal(t, int64(30), cached.Points)
	})

	t.Run("Idempotent", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 9, models.POSITIVE)
		engine := NewEngine(store, store)

		_, err := engine.Sync(ctx, system, "s", false)
		require.NoError(t, err)
		a, _ := engine.Read(ctx, system, "s")
		_, err = engine.Sync(ctx, system, "s", false)
		require.NoError(t, err)
		b, _ := engine.Read(ctx, system, "s")

		assert.Equal(t, a.Points, b.Points)
	})

	t.Run("Non-Forced Sync Notices New Rows", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 10, models.POSITIVE)
		engine := NewEngine(store, store)
		_, err := engine.Sync(ctx, system, "s", false)
		require.NoError(t, err)

		appendTx(t, store, "s", 4, models.NEGATIVE)
		record, err := engine.Sync(ctx, system, "s", false)

		require.NoError(t, err)
		assert.Equal(t, int64(6), record.Points)
	})

	t.Run("Forced Sync Repairs Drift", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 30, models.POSITIVE)
		require.NoError(t, store.UpsertBalance(ctx, &models.BalanceRecord{SubjectId: "s", Points: 999, TransactionCount: 1}))
		engine := NewEngine(store, store)

		unforced, err := engine.Sync(ctx, system, "s", false)
		require.NoError(t, err)
		assert.Equal(t, int64(999), unforced.Points)

		forced, err := engine.Sync(ctx, system, "s", true)
		require.NoError(t, err)
		assert.Equal(t, int64(30), forced.Points)
	})

	t.Run("Cache Write Failure", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "s", 8, models.POSITIVE)
		store.FailUpsert = errors.New("timeout")
		engine := NewEngine(store, store)

		record, err := engine.Sync(ctx, system, "s", true)

		assert.ErrorIs(t, err, models.ErrCacheSyncFailed)
		require.NotNil(t, record)
		assert.Equal(t, int64(8), record.Points)

		// A later forced sync self-heals.
		store.FailUpsert = nil
		_, err = engine.Sync(ctx, system, "s", true)
		require.NoError(t, err)
		cached, _ := engine.Read(ctx, system, "s")
		assert.Equal(t, int64(8), cached.Points)
	})

	t.Run("Restricted To Own Subject", func(t *testing.T) {
		store := memory.NewStore()
		c, err := access.Grant(access.Identity{UserID: "student-1", Role: models.STUDENT}, access.BalanceSync, "student-2")
		require.NoError(t, err)

		_, err = NewEngine(store, store).Sync(ctx, c, "student-2", true)

		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestRead(t *testing.T) {
	store := memory.NewStore()
	appendTx(t, store, "s", 3, models.POSITIVE)
	engine := NewEngine(store, store)

	_, err := engine.Read(context.Background(), system, "s")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSweepAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Repairs Every Subject", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "a", 5, models.POSITIVE)
		appendTx(t, store, "b", 2, models.POSITIVE)
		require.NoError(t, store.UpsertBalance(ctx, &models.BalanceRecord{SubjectId: "a", Points: 5, TransactionCount: 1}))
		require.NoError(t, store.UpsertBalance(ctx, &models.BalanceRecord{SubjectId: "ghost", Points: 40}))
		engine := NewEngine(store, store)

		report, err := engine.SweepAll(ctx, system)

		require.NoError(t, err)
		assert.Equal(t, SweepReport{Subjects: 3, Synced: 3, Repaired: 2, Failed: 0}, report)
		ghost, _ := engine.Read(ctx, system, "ghost")
		assert.Zero(t, ghost.Points)
	})

	t.Run("Continues Past Failures", func(t *testing.T) {
		store := memory.NewStore()
		appendTx(t, store, "a", 5, models.POSITIVE)
		appendTx(t, store, "b", 2, models.POSITIVE)
		store.FailUpsert = errors.New("read only")

		report, err := NewEngine(store, store).SweepAll(ctx, system)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Failed)
		assert.Equal(t, 0, report.Synced)
	})

	t.Run("Requires Elevated Capability", func(t *testing.T) {
		store := memory.NewStore()
		c, err := access.Grant(access.Identity{UserID: "student-1", Role: models.STUDENT}, access.BalanceSync, "student-1")
		require.NoError(t, err)

		_, err = NewEngine(store, store).SweepAll(ctx, c)

		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}
