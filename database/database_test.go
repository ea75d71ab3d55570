package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-gallery-backend/config"
	"ui-gallery-backend/logging"
	"ui-gallery-backend/models"
)

func TestConnect_SqliteMigrates(t *testing.T) {
	db, err := Connect(config.Database{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}, logging.Discard())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Component{}))
	assert.True(t, db.Migrator().HasTable(&models.Rating{}))
	assert.NoError(t, Ping(db))
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(config.Database{Driver: "oracle"}, logging.Discard())
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	db, err := Connect(config.Database{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}, logging.Discard())
	require.NoError(t, err)

	cfg := &config.Config{CreateAdmin: true, AdminEmail: "admin@test.com", AdminPassword: "adminpass"}

	// Seeding twice must leave exactly one admin
	require.NoError(t, SeedAdmin(db, cfg))
	require.NoError(t, SeedAdmin(db, cfg))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@test.com", admins[0].Email)
}

func TestSeedAdmin_Disabled(t *testing.T) {
	db, err := Connect(config.Database{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, SeedAdmin(db, &config.Config{}))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}
