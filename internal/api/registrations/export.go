package registrations

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
)

var exportHeader = []string{
	"Date",
	"League",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Team",
	"Amount",
	"Payment Status",
}

type exportRow struct {
	Date          string `json:"date"`
	League        string `json:"league"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Team          string `json:"team"`
	Amount        string `json:"amount"`
	PaymentStatus string `json:"paymentStatus"`
}

func (e exportRow) record() []string {
	return []string{e.Date, e.League, e.FirstName, e.LastName, e.Email, e.Phone, e.Team, e.Amount, e.PaymentStatus}
}

func newExportRow(row dbgen.ListRegistrationExportRowsRow) exportRow {
	team := "Individual"
	if row.TeamName.Valid && row.TeamName.String != "" {
		team = row.TeamName.String
	}
	return exportRow{
		Date:          row.CreatedAt.Format(time.DateOnly),
		League:        row.LeagueName,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Email:         row.Email,
		Phone:         row.Phone.String,
		Team:          team,
		Amount:        strconv.FormatFloat(float64(row.AmountDueCents)/100, 'f', 2, 64),
		PaymentStatus: row.PaymentStatus,
	}
}

// GET /api/v1/registrations/export?format=csv|json&league=
func HandleExportRegistrations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		apiutil.WriteError(w, http.StatusBadRequest, "format must be csv or json", nil)
		return
	}
	leagueID, err := apiutil.OptionalQueryInt64(r, "league")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	rows, err := q.ListRegistrationExportRows(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load registrations for export")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to export registrations", err)
		return
	}
	records := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		records = append(records, newExportRow(row))
	}

	scope := "all"
	if leagueID.Valid {
		scope = fmt.Sprintf("league-%d", leagueID.Int64)
	}
	filename := fmt.Sprintf("registrations-%s-%s.%s", scope, clock.Now().UTC().Format(time.DateOnly), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	logger.Info().Int("rows", len(records)).Str("format", format).Msg("Registrations exported")
	if format == "json" {
		if err := apiutil.WriteJSON(w, http.StatusOK, records); err != nil {
			logger.Error().Err(err).Msg("Failed to write registrations export")
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		logger.Error().Err(err).Msg("Failed to write registrations export")
		return
	}
	for _, record := range records {
		if err := writer.Write(record.record()); err != nil {
			logger.Error().Err(err).Msg("Failed to write registrations export")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error().Err(err).Msg("Failed to flush registrations export")
	}
}
