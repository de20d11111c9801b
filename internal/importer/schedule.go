// Package importer loads game schedules exported from spreadsheets.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
)

const placeholder = "TBD"

// Row is one schedule line. Line is the 1-based line number in the file.
type Row struct {
	Line     int
	Date     string
	Time     string
	HomeTeam string
	AwayTeam string
	Venue    string
	League   string
}

// Summary counts what an import did with each row.
type Summary struct {
	Rows     int
	Imported int
	Skipped  int
	Errors   int
}

var ErrMissingColumn = errors.New("missing required column")

// Header names are matched after lowercasing and dropping spaces and
// underscores, so "Home Team", "home_team" and "HomeTeam" are the same.
var columnAliases = map[string]string{
	"date":       "date",
	"gamedate":   "date",
	"time":       "time",
	"gametime":   "time",
	"hometeam":   "home",
	"home":       "home",
	"awayteam":   "away",
	"away":       "away",
	"visitor":    "away",
	"venue":      "venue",
	"location":   "venue",
	"league":     "league",
	"division":   "league",
	"leaguename": "league",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func normalizeHeader(raw string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// ReadRows parses CSV schedule data. The first record is the header; the home
// and away team columns are required.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if column, ok := columnAliases[normalizeHeader(name)]; ok {
			if _, seen := index[column]; !seen {
				index[column] = i
			}
		}
	}
	for _, required := range []string{"home", "away"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s team", ErrMissingColumn, required)
		}
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		row := Row{
			Line:     line,
			Date:     field(record, "date"),
			Time:     field(record, "time"),
			HomeTeam: field(record, "home"),
			AwayTeam: field(record, "away"),
			Venue:    field(record, "venue"),
			League:   field(record, "league"),
		}
		if row == (Row{Line: line}) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseDate reads the date formats spreadsheets commonly export.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// Import creates a scheduled game for each usable row. Rows naming unknown
// teams, lacking a date, pairing teams from different leagues, or repeating a
// pairing already scheduled that day are skipped. A failed row is counted
// and the import continues.
func Import(ctx context.Context, database *appdb.DB, rows []Row, logger *zerolog.Logger) Summary {
	summary := Summary{Rows: len(rows)}
	leagues := make(map[string]*dbgen.League)

	for _, row := range rows {
		rowLogger := logger.With().Int("line", row.Line).Str("home_team", row.HomeTeam).Str("away_team", row.AwayTeam).Logger()

		imported, err := importRow(ctx, database.Queries, row, leagues, &rowLogger)
		switch {
		case err != nil:
			rowLogger.Error().Err(err).Msg("Failed to import row")
			summary.Errors++
		case imported:
			summary.Imported++
		default:
			summary.Skipped++
		}
	}

	logger.Info().
		Int("rows", summary.Rows).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("errors", summary.Errors).
		Msg("Schedule import finished")
	return summary
}

func importRow(ctx context.Context, q *dbgen.Queries, row Row, leagues map[string]*dbgen.League, logger *zerolog.Logger) (bool, error) {
	if row.HomeTeam == "" || row.AwayTeam == "" {
		logger.Warn().Msg("Skipping row: missing team names")
		return false, nil
	}
	if row.Date == "" {
		logger.Warn().Msg("Skipping row: missing date")
		return false, nil
	}
	date, err := ParseDate(row.Date)
	if err != nil {
		logger.Warn().Str("date", row.Date).Msg("Skipping row: unreadable date")
		return false, nil
	}

	scheduledTime := placeholder
	if row.Time != "" {
		scheduledTime, err = domain.NormalizeTimeOfDay(row.Time)
		if err != nil {
			logger.Warn().Str("time", row.Time).Msg("Skipping row: unreadable time")
			return false, nil
		}
	}
	venue := row.Venue
	if venue == "" {
		venue = placeholder
	}

	var leagueID sql.NullInt64
	if row.League != "" {
		league, err := findLeague(ctx, q, row.League, leagues)
		if err != nil {
			return false, err
		}
		if league == nil {
			logger.Warn().Str("league", row.League).Msg("League not found; matching teams across all leagues")
		} else {
			leagueID = sql.NullInt64{Int64: league.ID, Valid: true}
		}
	}

	home, err := findTeam(ctx, q, row.HomeTeam, leagueID)
	if err != nil {
		return false, err
	}
	if home == nil {
		logger.Warn().Msg("Skipping row: home team not found")
		return false, nil
	}
	away, err := findTeam(ctx, q, row.AwayTeam, leagueID)
	if err != nil {
		return false, err
	}
	if away == nil {
		logger.Warn().Msg("Skipping row: away team not found")
		return false, nil
	}
	if home.ID == away.ID {
		logger.Warn().Msg("Skipping row: a team cannot play itself")
		return false, nil
	}
	if home.LeagueID != away.LeagueID {
		logger.Warn().Int64("home_league_id", home.LeagueID).Int64("away_league_id", away.LeagueID).Msg("Skipping row: teams are in different leagues")
		return false, nil
	}

	existing, err := q.CountGamesForPairingOnDate(ctx, dbgen.CountGamesForPairingOnDateParams{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		DayStart:   date,
		DayEnd:     date.AddDate(0, 0, 1),
	})
	if err != nil {
		return false, fmt.Errorf("check existing game: %w", err)
	}
	if existing > 0 {
		logger.Warn().Str("date", date.Format(time.DateOnly)).Msg("Skipping row: game already exists")
		return false, nil
	}

	game, err := q.CreateGame(ctx, dbgen.CreateGameParams{
		LeagueID:      home.LeagueID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		ScheduledDate: date,
		ScheduledTime: scheduledTime,
		Venue:         venue,
	})
	if err != nil {
		return false, fmt.Errorf("create game: %w", err)
	}
	logger.Info().Int64("game_id", game.ID).Str("date", date.Format(time.DateOnly)).Msg("Imported game")
	return true, nil
}

func findLeague(ctx context.Context, q *dbgen.Queries, name string, cache map[string]*dbgen.League) (*dbgen.League, error) {
	key := strings.ToLower(name)
	if league, ok := cache[key]; ok {
		return league, nil
	}
	league, err := q.FindLeagueByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		cache[key] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find league: %w", err)
	}
	cache[key] = &league
	return &league, nil
}

func findTeam(ctx context.Context, q *dbgen.Queries, name string, leagueID sql.NullInt64) (*dbgen.Team, error) {
	team, err := q.FindTeamByName(ctx, dbgen.FindTeamByNameParams{Name: name, LeagueID: leagueID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	return &team, nil
}
