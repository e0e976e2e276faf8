package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/yoga_studio/internal/db"
	"github.com/Skotchmaster/yoga_studio/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func seedUser(t *testing.T, r *Users, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FirstName: "Yoga", LastName: "User", Password: "hash"}
	require.NoError(t, r.Save(context.Background(), u))
	return u
}

func seedSession(t *testing.T, r *Sessions, name string) *models.Session {
	t.Helper()
	s := &models.Session{Name: name, Date: time.Now().UTC(), Description: "desc"}
	require.NoError(t, r.Create(context.Background(), s))
	return s
}

func TestUsers_Lookups(t *testing.T) {
	ctx := context.Background()
	users := &Users{DB: InitTestDB(t)}
	u := seedUser(t, users, "user@yoga.com")

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@yoga.com", got.Email)

	got, err = users.FindByEmail(ctx, "user@yoga.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.FindByEmail(ctx, "nobody@yoga.com")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := users.ExistsByEmail(ctx, "user@yoga.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = users.ExistsByEmail(ctx, "nobody@yoga.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	users := &Users{DB: InitTestDB(t)}
	seedUser(t, users, "dup@yoga.com")

	err := users.Save(context.Background(), &models.User{Email: "dup@yoga.com", FirstName: "Dup", LastName: "Dup", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUsers_DeleteRemovesRosterEntries(t *testing.T) {
	ctx := context.Background()
	gdb := InitTestDB(t)
	users := &Users{DB: gdb}
	sessions := &Sessions{DB: gdb}

	u := seedUser(t, users, "gone@yoga.com")
	s := seedSession(t, sessions, "Vinyasa")
	require.NoError(t, sessions.AddParticipant(ctx, s.ID, u.ID))

	require.NoError(t, users.DeleteByID(ctx, u.ID))
	assert.ErrorIs(t, users.DeleteByID(ctx, u.ID), ErrNotFound)

	reloaded, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Roster())
}

func TestTeachers(t *testing.T) {
	ctx := context.Background()
	teachers := &Teachers{DB: InitTestDB(t)}
	require.NoError(t, teachers.Save(ctx, &models.Teacher{FirstName: "Margot", LastName: "DELAHAYE"}))
	require.NoError(t, teachers.Save(ctx, &models.Teacher{FirstName: "Hélène", LastName: "THIERCELIN"}))

	all, err := teachers.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Margot", all[0].FirstName)

	_, err = teachers.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions_CRUD(t *testing.T) {
	ctx := context.Background()
	sessions := &Sessions{DB: InitTestDB(t)}

	s := seedSession(t, sessions, "Yoga Nidra")
	require.NotZero(t, s.ID)

	s.Name = "Yoga Nidra Modifié"
	s.Description = "Relaxation totale"
	require.NoError(t, sessions.Update(ctx, s))

	got, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yoga Nidra Modifié", got.Name)
	assert.Equal(t, "Relaxation totale", got.Description)

	all, err := sessions.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, sessions.DeleteByID(ctx, s.ID))
	_, err = sessions.FindByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, sessions.DeleteByID(ctx, s.ID), ErrNotFound)
}

func TestSessions_UpdateKeepsRoster(t *testing.T) {
	ctx := context.Background()
	gdb := InitTestDB(t)
	users := &Users{DB: gdb}
	sessions := &Sessions{DB: gdb}

	u := seedUser(t, users, "keep@yoga.com")
	s := seedSession(t, sessions, "Hatha")
	require.NoError(t, sessions.AddParticipant(ctx, s.ID, u.ID))

	require.NoError(t, sessions.Update(ctx, &models.Session{ID: s.ID, Name: "Hatha 2", Date: s.Date, Description: "d"}))

	got, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{u.ID}, got.Roster())
}

func TestSessions_RosterOrderAndGuards(t *testing.T) {
	ctx := context.Background()
	gdb := InitTestDB(t)
	users := &Users{DB: gdb}
	sessions := &Sessions{DB: gdb}

	a := seedUser(t, users, "a@yoga.com")
	b := seedUser(t, users, "b@yoga.com")
	c := seedUser(t, users, "c@yoga.com")
	s := seedSession(t, sessions, "Ashtanga")

	require.NoError(t, sessions.AddParticipant(ctx, s.ID, c.ID))
	require.NoError(t, sessions.AddParticipant(ctx, s.ID, a.ID))
	require.NoError(t, sessions.AddParticipant(ctx, s.ID, b.ID))
	assert.ErrorIs(t, sessions.AddParticipant(ctx, s.ID, a.ID), ErrDuplicate)

	require.NoError(t, sessions.RemoveParticipant(ctx, s.ID, a.ID))
	assert.ErrorIs(t, sessions.RemoveParticipant(ctx, s.ID, a.ID), ErrNotFound)

	got, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID, b.ID}, got.Roster())
}

func TestSessions_ConcurrentJoinsKeepEveryone(t *testing.T) {
	ctx := context.Background()
	gdb := InitTestDB(t)
	users := &Users{DB: gdb}
	sessions := &Sessions{DB: gdb}
	s := seedSession(t, sessions, "Power Yoga")

	const n = 10
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = seedUser(t, users, "u"+string(rune('a'+i))+"@yoga.com").ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for _, id := range ids {
		for k := 0; k < 2; k++ {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()
				errs <- sessions.AddParticipant(ctx, s.ID, id)
			}(id)
		}
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicate):
			dup++
		}
	}
	assert.Equal(t, n, ok)
	assert.Equal(t, n, dup)

	got, err := sessions.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got.Roster())
}

func TestSessions_SearchIDs(t *testing.T) {
	ctx := context.Background()
	sessions := &Sessions{DB: InitTestDB(t)}
	flow := seedSession(t, sessions, "Yoga Flow")
	seedSession(t, sessions, "Meditation")

	total, ids, err := sessions.SearchIDs(ctx, "FLOW", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []uint{flow.ID}, ids)

	found, err := sessions.FindByIDs(ctx, []uint{flow.ID, 999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Yoga Flow", found[0].Name)
}
