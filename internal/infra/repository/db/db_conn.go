package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDbConn 建立 postgres 連線
// 連線池由 pgxpool 管理，gorm 透過 database/sql 介面共用同一個 pool
// 回傳的 close 需在程式結束時呼叫
func GetDbConn(ctx context.Context, dbname, host, port, user, pas string, gormLogger logger.Interface) (*gorm.DB, func(), error) {
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", user, pas, host, port, dbname)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormLogger})
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, nil, err
	}

	return db, func() {
		sqlDB.Close()
		pool.Close()
	}, nil
}

// GetSqliteConn 建立 sqlite 連線，path 可為 ":memory:"
// sqlite 只允許單一寫入者，所以限制為一條連線
func GetSqliteConn(path string, gormLogger logger.Interface) (*gorm.DB, func(), error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, func() { sqlDB.Close() }, nil
}
