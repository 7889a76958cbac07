package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

// runSlotRepositoryContract exercises the behaviour every Slot Store must share.
func runSlotRepositoryContract(t *testing.T, newRepo func(t *testing.T) domain.Repository) {
	ctx := context.Background()
	key := domain.Key{Date: "2024-05-01", Time: "10:00"}
	ana := models.Client{FirstName: "Ana", LastName: "B", Email: "a@b.com", Service: "Manicure"}

	t.Run("InsertThenList", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, key))

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, models.Slot{Date: key.Date, Time: key.Time}, slots[0])
	})

	t.Run("InsertRejectsEmptyKey", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.Insert(ctx, domain.Key{Date: "2024-05-01"}), domain.ErrInvalidInput)
		assert.ErrorIs(t, repo.Insert(ctx, domain.Key{Time: "10:00"}), domain.ErrInvalidInput)

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("DuplicateInsertLeavesStoreUnchanged", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, key))
		require.NoError(t, repo.Book(ctx, key, ana))

		assert.ErrorIs(t, repo.Insert(ctx, key), domain.ErrDuplicateKey)

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.True(t, slots[0].Booked)
		assert.Equal(t, &ana, slots[0].Client)
	})

	t.Run("ListIsOrdered", func(t *testing.T) {
		repo := newRepo(t)
		for _, k := range []domain.Key{
			{Date: "2024-05-02", Time: "09:00"},
			{Date: "2024-05-01", Time: "14:00"},
			{Date: "2024-05-01", Time: "09:30"},
		} {
			require.NoError(t, repo.Insert(ctx, k))
		}

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, "2024-05-01 09:30", domain.KeyOf(slots[0]).String())
		assert.Equal(t, "2024-05-01 14:00", domain.KeyOf(slots[1]).String())
		assert.Equal(t, "2024-05-02 09:00", domain.KeyOf(slots[2]).String())
	})

	t.Run("FindMissing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Find(ctx, domain.Key{Date: "2099-01-01", Time: "00:00"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BookOnceOnly", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, key))
		require.NoError(t, repo.Book(ctx, key, ana))

		other := models.Client{FirstName: "Eve", LastName: "C", Service: "Pedicure"}
		assert.ErrorIs(t, repo.Book(ctx, key, other), domain.ErrSlotUnavailable)

		got, err := repo.Find(ctx, key)
		require.NoError(t, err)
		assert.True(t, got.Booked)
		assert.Equal(t, &ana, got.Client)
	})

	t.Run("BookMissing", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.Book(ctx, key, ana), domain.ErrSlotUnavailable)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		repo := newRepo(t)
		keep := domain.Key{Date: "2024-05-01", Time: "11:00"}
		require.NoError(t, repo.Insert(ctx, key))
		require.NoError(t, repo.Insert(ctx, keep))
		require.NoError(t, repo.Book(ctx, key, ana))

		require.NoError(t, repo.Delete(ctx, key), "booked slots can be deleted")
		require.NoError(t, repo.Delete(ctx, key))
		require.NoError(t, repo.Delete(ctx, domain.Key{Date: "2099-01-01", Time: "00:00"}))

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, keep, domain.KeyOf(slots[0]))
	})

	t.Run("ConcurrentBookSingleWinner", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, key))

		const n = 10
		var wg sync.WaitGroup
		results := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c := models.Client{FirstName: fmt.Sprintf("c%d", i), LastName: "X", Service: "Brows"}
				results <- repo.Book(ctx, key, c)
			}(i)
		}
		wg.Wait()
		close(results)

		wins, lost := 0, 0
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
			lost++
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, n-1, lost)
	})

	t.Run("ConcurrentInsertSingleWinner", func(t *testing.T) {
		repo := newRepo(t)

		const n = 8
		var wg sync.WaitGroup
		results := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- repo.Insert(ctx, key)
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		}
		assert.Equal(t, 1, wins)

		slots, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, slots, 1)
	})
}
