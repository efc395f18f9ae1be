package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, newTestDB(t))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

// runStoreSuite exercises the repositories against any supported driver.
func runStoreSuite(t *testing.T, db *DB) {
	ctx := context.Background()
	users := NewUserRepository(db)
	results := NewResultRepository(db)
	codes := NewAuthCodeRepository(db)

	alice := domain.NewUser("alice@example.com", "hash-a", false)
	bob := domain.NewUser("bob@example.com", "hash-b", true)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))
	require.NotZero(t, alice.ID)
	require.NotEqual(t, alice.ID, bob.ID)

	t.Run("users round trip", func(t *testing.T) {
		got, err := users.FindByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)
		assert.Equal(t, []string{domain.RoleUser, domain.RoleAdmin}, got.Roles)

		_, err = users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		all, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alice@example.com", all[0].Email)
	})

	base := time.Date(2023, 12, 12, 10, 10, 10, 0, time.UTC)
	r1 := domain.NewResult(30, bob, base)
	r2 := domain.NewResult(10, alice, base.Add(time.Hour))
	r3 := domain.NewResult(20, alice, base.Add(-time.Hour))
	for _, r := range []*domain.Result{r1, r2, r3} {
		require.NoError(t, results.Insert(ctx, r))
		require.NotZero(t, r.ID)
	}

	t.Run("find by id loads owner email", func(t *testing.T) {
		got, err := results.FindByID(ctx, r1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(30), got.Value)
		assert.Equal(t, bob.ID, got.UserID)
		assert.Equal(t, "bob@example.com", got.Owner)
		assert.Equal(t, "2023-12-12 10:10:10", got.FormattedTime())
		assert.Equal(t, int64(1), got.Version)

		_, err = results.FindByID(ctx, 999999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list ordering", func(t *testing.T) {
		tests := []struct {
			sort string
			want []int64
		}{
			{"", []int64{r1.ID, r2.ID, r3.ID}},
			{"id", []int64{r1.ID, r2.ID, r3.ID}},
			{"result", []int64{r2.ID, r3.ID, r1.ID}},
			{"time", []int64{r3.ID, r1.ID, r2.ID}},
			{"email", []int64{r2.ID, r3.ID, r1.ID}},
		}
		for _, tt := range tests {
			got, err := results.List(ctx, repository.ResultFilter{Sort: tt.sort})
			require.NoError(t, err, "sort %q", tt.sort)
			ids := make([]int64, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids, "sort %q", tt.sort)
		}

		_, err := results.List(ctx, repository.ResultFilter{Sort: "password"})
		assert.ErrorContains(t, err, "invalid order field")
	})

	t.Run("versioned update", func(t *testing.T) {
		current, err := results.FindByID(ctx, r2.ID)
		require.NoError(t, err)
		stale := *current

		current.Value = 99
		require.NoError(t, results.Update(ctx, current))
		assert.Equal(t, int64(2), current.Version)

		stale.Value = 1
		assert.ErrorIs(t, results.Update(ctx, &stale), repository.ErrConflict)

		got, err := results.FindByID(ctx, r2.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(99), got.Value)
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, results.Remove(ctx, r3))
		_, err := results.FindByID(ctx, r3.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, results.Remove(ctx, r3), repository.ErrNotFound)
	})

	t.Run("auth codes", func(t *testing.T) {
		code := domain.NewAuthCode(alice.ID, 10*time.Minute)
		expired := domain.NewAuthCode(alice.ID, -time.Minute)
		require.NoError(t, codes.Create(ctx, code))
		require.NoError(t, codes.Create(ctx, expired))

		got, err := codes.FindByCode(ctx, code.Code)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.UserID)

		require.NoError(t, codes.DeleteExpired(ctx))
		_, err = codes.FindByCode(ctx, expired.Code)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		require.NoError(t, codes.Delete(ctx, code.Code))
		assert.ErrorIs(t, codes.Delete(ctx, code.Code), repository.ErrNotFound)
	})

	t.Run("deleting a user cascades to results", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, "alice@example.com"))

		got, err := results.List(ctx, repository.ResultFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, r1.ID, got[0].ID)
	})
}
