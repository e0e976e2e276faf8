package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/yoga_studio/internal/config"
	"github.com/Skotchmaster/yoga_studio/internal/models"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"}
	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	require.NoError(t, Ping(context.Background(), db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestOpenPostgres_EmptyDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "")
	require.Error(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, &config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", DemoAdminEmail).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Admin)
	assert.NotEqual(t, DemoAdminPassword, admins[0].Password)

	var teachers int64
	require.NoError(t, db.Model(&models.Teacher{}).Count(&teachers).Error)
	assert.EqualValues(t, 2, teachers)
}
