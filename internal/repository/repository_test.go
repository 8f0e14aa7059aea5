package repository_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smapp/internal/config"
	"smapp/internal/db"
	"smapp/internal/repository"
	"smapp/internal/repository/repositorytest"
)

// newSQLiteDB opens a private in-memory database for one test.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := db.Open(config.DriverSQLite, dsn)
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func TestGormStore(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) *repository.Store {
		return repository.NewGormStore(newSQLiteDB(t))
	})
}

func TestReset(t *testing.T) {
	gormDB := newSQLiteDB(t)
	require.NoError(t, db.Reset(gormDB))
	require.False(t, gormDB.Migrator().HasTable("posts"))
	require.NoError(t, db.Migrate(gormDB))
	require.True(t, gormDB.Migrator().HasTable("posts"))
}
