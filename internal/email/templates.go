package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type RegistrationDetails struct {
	PlayerName       string
	LeagueName       string
	Division         string
	Season           string
	RegistrationType string
	TeamName         string
	AmountDue        string
	StartDate        time.Time
}

func RegistrationTypeLabel(registrationType string) string {
	switch strings.TrimSpace(registrationType) {
	case "player":
		return "Player"
	case "coach":
		return "Coach"
	case "volunteer":
		return "Volunteer"
	}
	return "Participant"
}

func BuildRegistrationConfirmation(details RegistrationDetails) Message {
	leagueName := strings.TrimSpace(details.LeagueName)
	if leagueName == "" {
		leagueName = "the league"
	}
	name := strings.TrimSpace(details.PlayerName)
	if name == "" {
		name = "there"
	}
	team := strings.TrimSpace(details.TeamName)
	if team == "" {
		team = "Individual"
	}
	start := "TBD"
	if !details.StartDate.IsZero() {
		start = details.StartDate.Format("Monday, Jan 2, 2006")
	}

	lines := []string{
		fmt.Sprintf("Hi %s,", name),
		"",
		fmt.Sprintf("We received your registration for %s.", leagueName),
		"",
		fmt.Sprintf("Division: %s", strings.TrimSpace(details.Division)),
		fmt.Sprintf("Season: %s", strings.TrimSpace(details.Season)),
		fmt.Sprintf("Registered as: %s", RegistrationTypeLabel(details.RegistrationType)),
		fmt.Sprintf("Team: %s", team),
		fmt.Sprintf("Season starts: %s", start),
	}
	if amount := strings.TrimSpace(details.AmountDue); amount != "" {
		lines = append(lines, fmt.Sprintf("Amount due: %s", amount))
	}
	lines = append(lines, "", "A league administrator will review your registration shortly.")

	return Message{
		Subject: fmt.Sprintf("Registration Received - %s", leagueName),
		Body:    strings.Join(lines, "\n"),
	}
}
