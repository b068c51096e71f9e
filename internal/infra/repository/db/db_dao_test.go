package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// newTestDao 每次建立全新的 in-memory sqlite
func newTestDao(t *testing.T) *DbDao {
	t.Helper()
	conn, closeFn, err := GetSqliteConn(":memory:", logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(closeFn)

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

func TestInitMigrate_Idempotent(t *testing.T) {
	dao := newTestDao(t)
	require.NoError(t, dao.InitMigrate())

	require.True(t, dao.Migrator().HasTable("products"))
	require.True(t, dao.Migrator().HasTable("orders"))
	require.True(t, dao.Migrator().HasTable("order_items"))
}
