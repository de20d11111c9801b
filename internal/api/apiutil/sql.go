package apiutil

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

func ToNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

// ToNullString treats nil and blank strings as NULL.
func ToNullString(value *string) sql.NullString {
	if value == nil || strings.TrimSpace(*value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.TrimSpace(*value), Valid: true}
}

func NullInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func NullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func NullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time
	return &v
}

func IsSQLiteUniqueViolation(err error) bool {
	return sqliteExtendedCode(err) == sqlite3.ErrConstraintUnique ||
		sqliteExtendedCode(err) == sqlite3.ErrConstraintPrimaryKey
}

func IsSQLiteForeignKeyViolation(err error) bool {
	return sqliteExtendedCode(err) == sqlite3.ErrConstraintForeignKey
}

func IsSQLiteCheckViolation(err error) bool {
	return sqliteExtendedCode(err) == sqlite3.ErrConstraintCheck
}

func sqliteExtendedCode(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode
	}
	return -1
}
