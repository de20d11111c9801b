package leagues

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultRoundIntervalDays = 7
	defaultSlotDuration      = time.Hour
)

// ScheduledGame is one generated pairing.
type ScheduledGame struct {
	LeagueID      int64
	Round         int
	HomeTeamID    int64
	AwayTeamID    int64
	ScheduledDate time.Time
	ScheduledTime string
	Venue         string
}

// ScheduleOptions controls how rounds map onto the calendar. Each round is
// played on a single day; games within a round are staggered by
// SlotDuration starting at FirstGameTime.
type ScheduleOptions struct {
	StartDate         time.Time
	EndDate           time.Time
	FirstGameTime     string
	SlotDuration      time.Duration
	RoundIntervalDays int
	Venue             string
}

func GenerateRoundRobinSchedule(leagueID int64, teamIDs []int64, opts ScheduleOptions) ([]ScheduledGame, error) {
	if leagueID <= 0 {
		return nil, errors.New("league ID is required")
	}
	if len(teamIDs) < 2 {
		return nil, errors.New("at least two teams are required")
	}
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id <= 0 {
			return nil, fmt.Errorf("invalid team ID %d", id)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("team %d listed twice", id)
		}
		seen[id] = struct{}{}
	}
	if strings.TrimSpace(opts.Venue) == "" {
		return nil, errors.New("venue is required")
	}
	firstGame, err := parseTimeOfDay(opts.FirstGameTime)
	if err != nil {
		return nil, err
	}
	slot := opts.SlotDuration
	if slot <= 0 {
		slot = defaultSlotDuration
	}
	interval := opts.RoundIntervalDays
	if interval <= 0 {
		interval = defaultRoundIntervalDays
	}
	startDate := truncateDate(opts.StartDate)
	endDate := truncateDate(opts.EndDate)
	if endDate.Before(startDate) {
		return nil, errors.New("start date must be on or before end date")
	}

	pairs := buildRoundRobinPairs(teamIDs)
	rounds := pairs[len(pairs)-1].Round
	lastRoundDate := startDate.AddDate(0, 0, (rounds-1)*interval)
	if lastRoundDate.After(endDate) {
		return nil, fmt.Errorf("insufficient dates: %d rounds need until %s", rounds, lastRoundDate.Format("2006-01-02"))
	}

	schedule := make([]ScheduledGame, 0, len(pairs))
	slotInRound := 0
	currentRound := 0
	for _, pairing := range pairs {
		if pairing.Round != currentRound {
			currentRound = pairing.Round
			slotInRound = 0
		}
		kickoff := firstGame.Add(time.Duration(slotInRound) * slot)
		slotInRound++

		schedule = append(schedule, ScheduledGame{
			LeagueID:      leagueID,
			Round:         pairing.Round,
			HomeTeamID:    pairing.HomeTeamID,
			AwayTeamID:    pairing.AwayTeamID,
			ScheduledDate: startDate.AddDate(0, 0, (pairing.Round-1)*interval),
			ScheduledTime: kickoff.Format("15:04"),
			Venue:         opts.Venue,
		})
	}
	return schedule, nil
}

type roundPair struct {
	Round      int
	HomeTeamID int64
	AwayTeamID int64
}

// buildRoundRobinPairs uses the circle method; a zero ID stands in for the
// bye when the team count is odd.
func buildRoundRobinPairs(teamIDs []int64) []roundPair {
	working := make([]int64, 0, len(teamIDs)+1)
	working = append(working, teamIDs...)
	if len(working)%2 == 1 {
		working = append(working, 0)
	}

	rounds := len(working) - 1
	pairs := make([]roundPair, 0, rounds*len(working)/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < len(working)/2; i++ {
			home := working[i]
			away := working[len(working)-1-i]
			if home == 0 || away == 0 {
				continue
			}
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, roundPair{
				Round:      round + 1,
				HomeTeamID: home,
				AwayTeamID: away,
			})
		}
		rotateTeams(working)
	}

	return pairs
}

func rotateTeams(teams []int64) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}

func parseTimeOfDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("time is required")
	}
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		formats := []string{"3:04 PM", "03:04 PM", "3:04PM", "03:04PM"}
		for _, format := range formats {
			if parsed, err = time.Parse(format, strings.ToUpper(raw)); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, errors.New("time must be in HH:MM or H:MM AM/PM format")
	}
	return parsed, nil
}

func truncateDate(value time.Time) time.Time {
	loc := value.Location()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc)
}

// NormalizeTimeOfDay accepts 24-hour or 12-hour clock input and returns HH:MM.
func NormalizeTimeOfDay(raw string) (string, error) {
	parsed, err := parseTimeOfDay(raw)
	if err != nil {
		return "", err
	}
	return parsed.Format("15:04"), nil
}
