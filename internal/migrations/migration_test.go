package migrations

import (
	"testing"

	"donerci/internal/database"
	"donerci/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, "file:"+t.Name()+"?mode=memory", false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRunMigrationsSeedsOnce(t *testing.T) {
	db := openDB(t)
	opts := Options{AdminEmail: "admin@donerci.com", AdminPassword: "change-me"}

	require.NoError(t, RunMigrations(db, opts))
	require.NoError(t, RunMigrations(db, opts))

	assert.EqualValues(t, 3, count(t, db, &models.Restaurant{}))
	assert.EqualValues(t, 7, count(t, db, &models.MenuItem{}))
	assert.EqualValues(t, 1, count(t, db, &models.User{}))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@donerci.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.NotEqual(t, "change-me", admin.PasswordHash)

	var doner models.MenuItem
	require.NoError(t, db.Where("name = ?", "Chicken Doner Wrap").First(&doner).Error)
	require.NotNil(t, doner.RestaurantID)
}

func TestRunMigrationsDemoItemsAndDrop(t *testing.T) {
	db := openDB(t)

	require.NoError(t, RunMigrations(db, Options{DemoItems: 5}))
	assert.EqualValues(t, 12, count(t, db, &models.MenuItem{}))
	assert.Zero(t, count(t, db, &models.User{}))

	require.NoError(t, RunMigrations(db, Options{Drop: true}))
	assert.EqualValues(t, 7, count(t, db, &models.MenuItem{}))
}

func TestRunMigrationsRejectsWeakAdminPassword(t *testing.T) {
	db := openDB(t)
	err := RunMigrations(db, Options{AdminEmail: "admin@donerci.com", AdminPassword: "123"})
	assert.Error(t, err)
}
