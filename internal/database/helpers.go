package database

import (
	"database/sql"
	"time"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func optionalString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func optionalTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}

func boolToInt64(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}
