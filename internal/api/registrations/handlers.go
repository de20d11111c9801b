// internal/api/registrations/handlers.go
package registrations

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/email"
	domain "github.com/codr1/CopticLeague/internal/leagues"
	"github.com/codr1/CopticLeague/internal/metrics"
)

const (
	registrationQueryTimeout = 5 * time.Second
	registrationIDPathKey    = "id"
)

var (
	registrationTypes    = []string{"player", "coach", "volunteer"}
	registrationStatuses = []string{"submitted", "approved", "rejected", "waitlist"}
	paymentStatuses      = []string{"pending", "partial", "paid", "refunded"}
	paymentMethods       = []string{"credit_card", "debit_card", "cash", "check", "online"}
	shirtSizes           = []string{"XS", "S", "M", "L", "XL", "XXL"}
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
	mailer   email.EmailSender
	clock    clockwork.Clock = clockwork.NewRealClock()
)

var errAlreadyRegistered = apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Already registered for this league"}

func init() {
	apiutil.RegisterValidation("registration_type", apiutil.OneOf(registrationTypes...))
	apiutil.RegisterValidation("registration_status", apiutil.OneOf(registrationStatuses...))
	apiutil.RegisterValidation("payment_status", apiutil.OneOf(paymentStatuses...))
	apiutil.RegisterValidation("payment_method", apiutil.OneOf(paymentMethods...))
	apiutil.RegisterValidation("shirt_size", apiutil.OneOf(shirtSizes...))
}

type waiverRequest struct {
	Signed     bool    `json:"signed"`
	SignerName *string `json:"signerName" validate:"omitempty,max=200"`
}

type medicalRequest struct {
	Allergies             *string `json:"allergies" validate:"omitempty,max=1000"`
	Medications           *string `json:"medications" validate:"omitempty,max=1000"`
	Conditions            *string `json:"conditions" validate:"omitempty,max=1000"`
	InsuranceProvider     *string `json:"insuranceProvider" validate:"omitempty,max=200"`
	InsurancePolicyNumber *string `json:"insurancePolicyNumber" validate:"omitempty,max=100"`
}

type registrationRequest struct {
	LeagueID         int64           `json:"leagueId" validate:"required,gt=0"`
	TeamID           *int64          `json:"teamId" validate:"omitempty,gt=0"`
	RegistrationType string          `json:"registrationType" validate:"required,registration_type"`
	ShirtSize        *string         `json:"shirtSize" validate:"omitempty,shirt_size"`
	Waiver           *waiverRequest  `json:"emergencyWaiver"`
	Medical          *medicalRequest `json:"medicalInfo"`
	Notes            *string         `json:"notes" validate:"omitempty,max=2000"`
}

// registrationUpdate is what the registrant (or an admin) may change. A
// teamId of 0 detaches the registration from its team. Status is admin only.
type registrationUpdate struct {
	TeamID    *int64          `json:"teamId" validate:"omitempty,gte=0"`
	ShirtSize *string         `json:"shirtSize" validate:"omitempty,shirt_size"`
	Waiver    *waiverRequest  `json:"emergencyWaiver"`
	Medical   *medicalRequest `json:"medicalInfo"`
	Notes     *string         `json:"notes" validate:"omitempty,max=2000"`
	Status    *string         `json:"status" validate:"omitempty,registration_status"`
}

type userSummary struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

type leagueSummary struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Division             string `json:"division"`
	Season               string `json:"season"`
	RegistrationFeeCents int64  `json:"registrationFeeCents"`
}

type teamSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type waiverResponse struct {
	Signed     bool       `json:"signed"`
	SignedDate *time.Time `json:"signedDate,omitempty"`
	SignerName *string    `json:"signerName,omitempty"`
}

type medicalResponse struct {
	Allergies             *string `json:"allergies,omitempty"`
	Medications           *string `json:"medications,omitempty"`
	Conditions            *string `json:"conditions,omitempty"`
	InsuranceProvider     *string `json:"insuranceProvider,omitempty"`
	InsurancePolicyNumber *string `json:"insurancePolicyNumber,omitempty"`
}

type registrationResponse struct {
	ID               int64           `json:"id"`
	User             userSummary     `json:"user"`
	League           leagueSummary   `json:"league"`
	Team             *teamSummary    `json:"team,omitempty"`
	RegistrationType string          `json:"registrationType"`
	PaymentStatus    string          `json:"paymentStatus"`
	AmountDueCents   int64           `json:"amountDueCents"`
	AmountDue        string          `json:"amountDue"`
	AmountPaidCents  int64           `json:"amountPaidCents"`
	PaymentMethod    string          `json:"paymentMethod"`
	TransactionID    string          `json:"transactionId,omitempty"`
	Status           string          `json:"status"`
	Waiver           waiverResponse  `json:"emergencyWaiver"`
	Medical          medicalResponse `json:"medicalInfo"`
	ShirtSize        *string         `json:"shirtSize,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// InitHandlers must be called during server startup before handling requests.
// sender may be nil, in which case no confirmation emails are sent.
func InitHandlers(db *appdb.DB, sender email.EmailSender, clk clockwork.Clock) {
	database = db
	if db != nil {
		queries = db.Queries
	}
	mailer = sender
	if clk != nil {
		clock = clk
	}
}

// GET /api/v1/registrations
func HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
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

	leagueID, err := apiutil.OptionalQueryInt64(r, "league")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), err)
		return
	}
	userID, err := apiutil.OptionalQueryInt64(r, "user")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	rows, err := q.ListRegistrations(ctx, dbgen.ListRegistrationsParams{
		LeagueID: leagueID,
		Status:   apiutil.OptionalQueryString(r, "status"),
		UserID:   userID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list registrations")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list registrations", err)
		return
	}

	builder := newResponseBuilder(q)
	resp := make([]registrationResponse, 0, len(rows))
	for _, row := range rows {
		item, err := builder.build(ctx, row)
		if err != nil {
			logger.Error().Err(err).Int64("registration_id", row.ID).Msg("Failed to load registration details")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list registrations", err)
			return
		}
		resp = append(resp, item)
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write registrations response")
	}
}

// GET /api/v1/registrations/{id}
func HandleGetRegistration(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAuthenticated(w, r) {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	registrationID, err := apiutil.PathID(r, registrationIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid registration ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	registration, err := q.GetRegistration(ctx, registrationID)
	if err != nil {
		writeRegistrationError(w, r, "Failed to load registration", err)
		return
	}
	if !apiutil.RequireOwnerOrAdmin(w, r, registration.UserID) {
		return
	}
	writeRegistration(ctx, w, r, q, http.StatusOK, registration)
}

// POST /api/v1/registrations
func HandleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAuthenticated(w, r) {
		return
	}
	user := authz.UserFromContext(r.Context())
	q := loadQueries()
	if q == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	var req registrationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	var (
		league       dbgen.League
		registration dbgen.Registration
	)
	err := database.RunInTx(ctx, func(tx *appdb.DB) error {
		var err error
		league, err = tx.Queries.GetLeague(ctx, req.LeagueID)
		if errors.Is(err, sql.ErrNoRows) {
			return apiutil.HandlerError{Status: http.StatusNotFound, Message: "League not found", Err: err}
		}
		if err != nil {
			return err
		}
		if !domain.RegistrationOpen(league.RegistrationDeadline, clock.Now()) {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Registration deadline has passed", Err: domain.ErrRegistrationClosed}
		}

		_, err = tx.Queries.GetRegistrationByUserAndLeague(ctx, dbgen.GetRegistrationByUserAndLeagueParams{
			UserID:   user.ID,
			LeagueID: league.ID,
		})
		if err == nil {
			return errAlreadyRegistered
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		params := dbgen.CreateRegistrationParams{
			UserID:           user.ID,
			LeagueID:         league.ID,
			RegistrationType: req.RegistrationType,
			AmountDueCents:   league.RegistrationFeeCents,
			ShirtSize:        apiutil.ToNullString(req.ShirtSize),
		}
		if req.TeamID != nil {
			if err := checkTeamInLeague(ctx, tx.Queries, *req.TeamID, league.ID); err != nil {
				return err
			}
			params.TeamID = sql.NullInt64{Int64: *req.TeamID, Valid: true}
		}
		if req.Waiver != nil && req.Waiver.Signed {
			params.WaiverSigned = true
			params.WaiverSignedDate = sql.NullTime{Time: clock.Now().UTC(), Valid: true}
			params.WaiverSignerName = apiutil.ToNullString(trimmed(req.Waiver.SignerName))
		}
		if req.Medical != nil {
			params.MedicalAllergies = apiutil.ToNullString(trimmed(req.Medical.Allergies))
			params.MedicalMedications = apiutil.ToNullString(trimmed(req.Medical.Medications))
			params.MedicalConditions = apiutil.ToNullString(trimmed(req.Medical.Conditions))
			params.InsuranceProvider = apiutil.ToNullString(trimmed(req.Medical.InsuranceProvider))
			params.InsurancePolicyNumber = apiutil.ToNullString(trimmed(req.Medical.InsurancePolicyNumber))
		}
		if req.Notes != nil {
			params.Notes = strings.TrimSpace(*req.Notes)
		}

		registration, err = tx.Queries.CreateRegistration(ctx, params)
		if apiutil.IsSQLiteUniqueViolation(err) {
			return errAlreadyRegistered
		}
		return err
	})
	if err != nil {
		writeRegistrationError(w, r, "Failed to create registration", err)
		return
	}

	metrics.ObserveRegistrationCreated(registration.RegistrationType)
	logger.Info().
		Int64("registration_id", registration.ID).
		Int64("league_id", league.ID).
		Int64("user_id", user.ID).
		Str("registration_type", registration.RegistrationType).
		Msg("Registration created")

	sendConfirmation(ctx, q, registration, league)
	writeRegistration(ctx, w, r, q, http.StatusCreated, registration)
}

// PUT /api/v1/registrations/{id}
func HandleUpdateRegistration(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAuthenticated(w, r) {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	registrationID, err := apiutil.PathID(r, registrationIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid registration ID", err)
		return
	}

	var req registrationUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	current, err := q.GetRegistration(ctx, registrationID)
	if err != nil {
		writeRegistrationError(w, r, "Failed to load registration", err)
		return
	}
	if !apiutil.RequireOwnerOrAdmin(w, r, current.UserID) {
		return
	}
	if req.Status != nil && !authz.IsAdmin(authz.UserFromContext(r.Context())) {
		apiutil.WriteError(w, http.StatusForbidden, "Only admins may change registration status", nil)
		return
	}

	params, err := applyRegistrationUpdate(ctx, q, current, req)
	if err != nil {
		writeRegistrationError(w, r, "Failed to update registration", err)
		return
	}
	updated, err := q.UpdateRegistration(ctx, params)
	if err != nil {
		writeRegistrationError(w, r, "Failed to update registration", err)
		return
	}

	logger.Info().Int64("registration_id", updated.ID).Str("status", updated.Status).Msg("Registration updated")
	writeRegistration(ctx, w, r, q, http.StatusOK, updated)
}

// DELETE /api/v1/registrations/{id}
func HandleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
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

	registrationID, err := apiutil.PathID(r, registrationIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid registration ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registrationQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteRegistration(ctx, registrationID)
	if err != nil {
		logger.Error().Err(err).Int64("registration_id", registrationID).Msg("Failed to delete registration")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete registration", err)
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Registration not found", nil)
		return
	}

	logger.Info().Int64("registration_id", registrationID).Msg("Registration deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Registration removed"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write delete response")
	}
}

func applyRegistrationUpdate(ctx context.Context, q *dbgen.Queries, current dbgen.Registration, req registrationUpdate) (dbgen.UpdateRegistrationParams, error) {
	params := dbgen.UpdateRegistrationParams{
		TeamID:                current.TeamID,
		Status:                current.Status,
		WaiverSigned:          current.WaiverSigned,
		WaiverSignedDate:      current.WaiverSignedDate,
		WaiverSignerName:      current.WaiverSignerName,
		MedicalAllergies:      current.MedicalAllergies,
		MedicalMedications:    current.MedicalMedications,
		MedicalConditions:     current.MedicalConditions,
		InsuranceProvider:     current.InsuranceProvider,
		InsurancePolicyNumber: current.InsurancePolicyNumber,
		ShirtSize:             current.ShirtSize,
		Notes:                 current.Notes,
		ID:                    current.ID,
	}

	if req.TeamID != nil {
		if *req.TeamID == 0 {
			params.TeamID = sql.NullInt64{}
		} else {
			if err := checkTeamInLeague(ctx, q, *req.TeamID, current.LeagueID); err != nil {
				return params, err
			}
			params.TeamID = sql.NullInt64{Int64: *req.TeamID, Valid: true}
		}
	}
	if req.ShirtSize != nil {
		params.ShirtSize = apiutil.ToNullString(req.ShirtSize)
	}
	if req.Waiver != nil {
		switch {
		case req.Waiver.Signed && !current.WaiverSigned:
			params.WaiverSigned = true
			params.WaiverSignedDate = sql.NullTime{Time: clock.Now().UTC(), Valid: true}
		case !req.Waiver.Signed:
			params.WaiverSigned = false
			params.WaiverSignedDate = sql.NullTime{}
		}
		if req.Waiver.SignerName != nil {
			params.WaiverSignerName = apiutil.ToNullString(trimmed(req.Waiver.SignerName))
		}
	}
	if m := req.Medical; m != nil {
		if m.Allergies != nil {
			params.MedicalAllergies = apiutil.ToNullString(trimmed(m.Allergies))
		}
		if m.Medications != nil {
			params.MedicalMedications = apiutil.ToNullString(trimmed(m.Medications))
		}
		if m.Conditions != nil {
			params.MedicalConditions = apiutil.ToNullString(trimmed(m.Conditions))
		}
		if m.InsuranceProvider != nil {
			params.InsuranceProvider = apiutil.ToNullString(trimmed(m.InsuranceProvider))
		}
		if m.InsurancePolicyNumber != nil {
			params.InsurancePolicyNumber = apiutil.ToNullString(trimmed(m.InsurancePolicyNumber))
		}
	}
	if req.Notes != nil {
		params.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	return params, nil
}

func checkTeamInLeague(ctx context.Context, q *dbgen.Queries, teamID, leagueID int64) error {
	team, err := q.GetTeam(ctx, teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err}
	}
	if err != nil {
		return err
	}
	if team.LeagueID != leagueID {
		return apiutil.FieldError{Field: "teamId", Reason: "must belong to the registration's league"}
	}
	return nil
}

func sendConfirmation(ctx context.Context, q *dbgen.Queries, registration dbgen.Registration, league dbgen.League) {
	if mailer == nil {
		return
	}
	logger := log.Ctx(ctx)
	user, err := q.GetUserByID(ctx, registration.UserID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", registration.UserID).Msg("Failed to load user for registration confirmation")
		return
	}
	details := email.RegistrationDetails{
		PlayerName:       strings.TrimSpace(user.FirstName + " " + user.LastName),
		LeagueName:       league.Name,
		Division:         league.Division,
		Season:           league.Season,
		RegistrationType: registration.RegistrationType,
		AmountDue:        apiutil.FormatPriceCents(registration.AmountDueCents),
		StartDate:        league.StartDate,
	}
	if registration.TeamID.Valid {
		if team, err := q.GetTeam(ctx, registration.TeamID.Int64); err == nil {
			details.TeamName = team.Name
		}
	}
	email.SendRegistrationConfirmation(ctx, mailer, user.Email, email.BuildRegistrationConfirmation(details), logger)
}

// responseBuilder caches the users, leagues and teams referenced by a batch
// of registrations.
type responseBuilder struct {
	q       *dbgen.Queries
	users   map[int64]dbgen.User
	leagues map[int64]dbgen.League
	teams   map[int64]dbgen.Team
}

func newResponseBuilder(q *dbgen.Queries) *responseBuilder {
	return &responseBuilder{
		q:       q,
		users:   make(map[int64]dbgen.User),
		leagues: make(map[int64]dbgen.League),
		teams:   make(map[int64]dbgen.Team),
	}
}

func (b *responseBuilder) build(ctx context.Context, reg dbgen.Registration) (registrationResponse, error) {
	user, ok := b.users[reg.UserID]
	if !ok {
		var err error
		if user, err = b.q.GetUserByID(ctx, reg.UserID); err != nil {
			return registrationResponse{}, err
		}
		b.users[reg.UserID] = user
	}
	league, ok := b.leagues[reg.LeagueID]
	if !ok {
		var err error
		if league, err = b.q.GetLeague(ctx, reg.LeagueID); err != nil {
			return registrationResponse{}, err
		}
		b.leagues[reg.LeagueID] = league
	}

	resp := registrationResponse{
		ID: reg.ID,
		User: userSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     apiutil.NullStringPtr(user.Phone),
		},
		League: leagueSummary{
			ID:                   league.ID,
			Name:                 league.Name,
			Division:             league.Division,
			Season:               league.Season,
			RegistrationFeeCents: league.RegistrationFeeCents,
		},
		RegistrationType: reg.RegistrationType,
		PaymentStatus:    reg.PaymentStatus,
		AmountDueCents:   reg.AmountDueCents,
		AmountDue:        apiutil.FormatPriceCents(reg.AmountDueCents),
		AmountPaidCents:  reg.AmountPaidCents,
		PaymentMethod:    reg.PaymentMethod,
		TransactionID:    reg.TransactionID,
		Status:           reg.Status,
		Waiver: waiverResponse{
			Signed:     reg.WaiverSigned,
			SignedDate: apiutil.NullTimePtr(reg.WaiverSignedDate),
			SignerName: apiutil.NullStringPtr(reg.WaiverSignerName),
		},
		Medical: medicalResponse{
			Allergies:             apiutil.NullStringPtr(reg.MedicalAllergies),
			Medications:           apiutil.NullStringPtr(reg.MedicalMedications),
			Conditions:            apiutil.NullStringPtr(reg.MedicalConditions),
			InsuranceProvider:     apiutil.NullStringPtr(reg.InsuranceProvider),
			InsurancePolicyNumber: apiutil.NullStringPtr(reg.InsurancePolicyNumber),
		},
		ShirtSize: apiutil.NullStringPtr(reg.ShirtSize),
		Notes:     reg.Notes,
		CreatedAt: reg.CreatedAt,
		UpdatedAt: reg.UpdatedAt,
	}

	if reg.TeamID.Valid {
		team, ok := b.teams[reg.TeamID.Int64]
		if !ok {
			var err error
			team, err = b.q.GetTeam(ctx, reg.TeamID.Int64)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return registrationResponse{}, err
			}
			b.teams[reg.TeamID.Int64] = team
		}
		if team.ID != 0 {
			resp.Team = &teamSummary{ID: team.ID, Name: team.Name}
		}
	}
	return resp, nil
}

func writeRegistration(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, status int, registration dbgen.Registration) {
	logger := log.Ctx(r.Context())
	resp, err := newResponseBuilder(q).build(ctx, registration)
	if err != nil {
		logger.Error().Err(err).Int64("registration_id", registration.ID).Msg("Failed to load registration details")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load registration", err)
		return
	}
	if err := apiutil.WriteJSON(w, status, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write registration response")
	}
}

func writeRegistrationError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var handlerErr apiutil.HandlerError
	var fieldErr apiutil.FieldError
	switch {
	case errors.As(err, &handlerErr), errors.As(err, &fieldErr):
		apiutil.WriteHandlerError(w, err)
	case errors.Is(err, sql.ErrNoRows):
		apiutil.WriteError(w, http.StatusNotFound, "Registration not found", nil)
	case apiutil.IsSQLiteCheckViolation(err):
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid registration field value", err)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg(message)
		apiutil.WriteError(w, http.StatusInternalServerError, message, err)
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	if out == "" {
		return nil
	}
	return &out
}

func loadQueries() *dbgen.Queries {
	return queries
}
