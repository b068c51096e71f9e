package constants

import "time"

type ContextKey string

const (
	RequestIDKey    ContextKey = "request_id"
	RequestIDHeader            = "X-Request-ID"
)

const (
	// ISO local date-time，視為 UTC
	LocalDateTimeLayout = "2006-01-02T15:04:05"

	DefaultProductCacheTTL = 10 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
)

type StoreDriver string

const (
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverSqlite   StoreDriver = "sqlite"
	StoreDriverMemory   StoreDriver = "memory"
)

func IsValidStoreDriver(driver string) bool {
	switch StoreDriver(driver) {
	case StoreDriverPostgres, StoreDriverSqlite, StoreDriverMemory:
		return true
	default:
		return false
	}
}
