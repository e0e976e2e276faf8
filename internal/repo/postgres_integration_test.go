package repo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/yoga_studio/internal/db"
	"github.com/Skotchmaster/yoga_studio/internal/models"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("YOGA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("YOGA_TEST_DATABASE_URL is required for postgres tests")
	}

	gdb, err := db.OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, gdb.Exec("TRUNCATE TABLE participations, sessions, teachers, users RESTART IDENTITY CASCADE").Error)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func TestPostgres_UniqueViolationsTranslate(t *testing.T) {
	ctx := context.Background()
	gdb := newPostgresDB(t)
	users := &Users{DB: gdb}

	require.NoError(t, users.Save(ctx, &models.User{Email: "pg@yoga.com", FirstName: "Pg", LastName: "User", Password: "x"}))
	err := users.Save(ctx, &models.User{Email: "pg@yoga.com", FirstName: "Pg", LastName: "User", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostgres_ConcurrentJoins(t *testing.T) {
	ctx := context.Background()
	gdb := newPostgresDB(t)
	users := &Users{DB: gdb}
	sessions := &Sessions{DB: gdb}

	s := &models.Session{Name: "Pg Flow", Date: time.Now().UTC(), Description: "desc"}
	require.NoError(t, sessions.Create(ctx, s))
	u := &models.User{Email: "race@yoga.com", FirstName: "Race", LastName: "User", Password: "x"}
	require.NoError(t, users.Save(ctx, u))

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- sessions.AddParticipant(ctx, s.ID, u.ID)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, 1, ok)

	got, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{u.ID}, got.Roster())
}
