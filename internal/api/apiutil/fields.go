package apiutil

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// PathID parses a positive integer path value registered on the mux.
func PathID(r *http.Request, key string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(key), key)
}

// OptionalQueryInt64 returns an invalid NullInt64 when the parameter is absent.
func OptionalQueryInt64(r *http.Request, key string) (sql.NullInt64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	value, err := ParsePositiveInt64Field(raw, key)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: value, Valid: true}, nil
}

func OptionalQueryString(r *http.Request, key string) sql.NullString {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

// OptionalQueryDate parses YYYY-MM-DD or RFC 3339 query values. endOfDay
// moves a bare date to its last instant so ranges are inclusive.
func OptionalQueryDate(r *http.Request, key string, endOfDay bool) (sql.NullTime, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return sql.NullTime{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return sql.NullTime{Time: parsed.UTC(), Valid: true}, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("%s must be a valid date", key)
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return sql.NullTime{Time: parsed, Valid: true}, nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns UTC.
func ParseDate(raw string, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date", field)
	}
	return parsed, nil
}

func FormatPriceCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
