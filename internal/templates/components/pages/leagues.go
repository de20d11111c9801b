package pages

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	domain "github.com/codr1/CopticLeague/internal/leagues"
)

// LeagueCard is one league on the home page.
type LeagueCard struct {
	ID                   int64
	Name                 string
	Division             string
	Season               string
	Status               string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time
	RegistrationFee      string
	RegistrationOpen     bool
}

// LeagueHeader titles the standings and schedule pages.
type LeagueHeader struct {
	ID       int64
	Name     string
	Division string
	Season   string
}

// GameRow is one scheduled or played game.
type GameRow struct {
	ID        int64
	Date      time.Time
	Time      string
	Venue     string
	Status    string
	HomeTeam  string
	AwayTeam  string
	HomeScore int64
	AwayScore int64
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func Home(leagues []LeagueCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6"><h1 class="text-2xl font-semibold">Leagues</h1>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildLeagueListHTML(leagues)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func buildLeagueListHTML(leagues []LeagueCard) string {
	if len(leagues) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No leagues yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-4 sm:grid-cols-2">`)
	for _, league := range leagues {
		registration := "Registration closed"
		if league.RegistrationOpen {
			registration = "Register by " + formatDate(league.RegistrationDeadline)
		}
		fmt.Fprintf(&builder,
			`<div class="rounded border bg-white p-4 shadow-sm" data-league-id="%d">
				<div class="text-lg font-semibold">%s</div>
				<div class="text-sm text-gray-600">%s &middot; %s</div>
				<dl class="mt-3 space-y-1 text-sm">
					<div><dt class="inline font-medium">Season:</dt> <dd class="inline">%s - %s</dd></div>
					<div><dt class="inline font-medium">Fee:</dt> <dd class="inline">%s</dd></div>
					<div><dt class="inline font-medium">Status:</dt> <dd class="inline">%s</dd></div>
				</dl>
				<div class="mt-2 text-xs text-gray-500">%s</div>
				<div class="mt-3 flex gap-4 text-sm"><a href="/leagues/%d/standings">Standings</a><a href="/leagues/%d/schedule">Schedule</a></div>
			</div>`,
			league.ID,
			html.EscapeString(league.Name),
			html.EscapeString(league.Division),
			html.EscapeString(league.Season),
			formatDate(league.StartDate),
			formatDate(league.EndDate),
			html.EscapeString(league.RegistrationFee),
			html.EscapeString(league.Status),
			registration,
			league.ID,
			league.ID,
		)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func leagueTitleHTML(header LeagueHeader, section string) string {
	return fmt.Sprintf(`<div><h1 class="text-2xl font-semibold">%s</h1><p class="text-sm text-gray-600">%s &middot; %s &middot; %s</p></div>`,
		html.EscapeString(header.Name),
		html.EscapeString(header.Division),
		html.EscapeString(header.Season),
		section,
	)
}

// StandingsPage polls its own table fragment so scores entered during a game
// day show up without a reload.
func StandingsPage(header LeagueHeader, standings []domain.TeamStanding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6">`+leagueTitleHTML(header, "Standings")); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<div id="standings-table" hx-get="/leagues/%d/standings" hx-trigger="every 60s" hx-swap="innerHTML">`, header.ID)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildStandingsTableHTML(standings)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

func StandingsTable(standings []domain.TeamStanding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildStandingsTableHTML(standings))
		return err
	})
}

func buildStandingsTableHTML(standings []domain.TeamStanding) string {
	if len(standings) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No teams in this league yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left"><th>#</th><th>Team</th><th>W</th><th>L</th><th>Pct</th><th>GP</th></tr></thead><tbody>`)
	for _, row := range standings {
		fmt.Fprintf(&builder,
			`<tr data-team-id="%d"><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%.1f</td><td>%d</td></tr>`,
			row.TeamID,
			row.Rank,
			html.EscapeString(row.Team),
			row.Wins,
			row.Losses,
			row.WinPercentage,
			row.GamesPlayed,
		)
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}

func SchedulePage(header LeagueHeader, games []GameRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6">`+leagueTitleHTML(header, "Schedule")); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="schedule-list">`+buildScheduleHTML(games)+`</div>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func ScheduleList(games []GameRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildScheduleHTML(games))
		return err
	})
}

func buildScheduleHTML(games []GameRow) string {
	if len(games) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No games scheduled.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<ul class="divide-y rounded border bg-white">`)
	for _, game := range games {
		result := html.EscapeString(game.Status)
		if game.Status == domain.StatusCompleted || game.Status == domain.StatusInProgress {
			result = fmt.Sprintf("%d - %d", game.HomeScore, game.AwayScore)
		}
		fmt.Fprintf(&builder,
			`<li class="flex flex-wrap items-center justify-between gap-2 p-3" data-game-id="%d"><div><div class="font-medium">%s vs %s</div><div class="text-xs text-gray-500">%s %s &middot; %s</div></div><div class="text-sm">%s</div></li>`,
			game.ID,
			html.EscapeString(game.HomeTeam),
			html.EscapeString(game.AwayTeam),
			formatDate(game.Date),
			html.EscapeString(game.Time),
			html.EscapeString(game.Venue),
			result,
		)
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}
