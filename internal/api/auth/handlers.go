package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/config"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/ratelimit"
)

const (
	authQueryTimeout   = 5 * time.Second
	defaultPhoneRegion = "US"
)

var (
	queries   *dbgen.Queries
	appConfig *config.Config
	limiter   *ratelimit.Limiter
	clock     clockwork.Clock = clockwork.NewRealClock()
)

type registerRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Phone     *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type emergencyContact struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// profileUpdate lists the only fields a user may change on their own account.
type profileUpdate struct {
	FirstName        *string           `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName         *string           `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone            *string           `json:"phone"`
	EmergencyContact *emergencyContact `json:"emergencyContact"`
}

type UserResponse struct {
	ID               int64             `json:"id"`
	Email            string            `json:"email"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Phone            *string           `json:"phone,omitempty"`
	Role             string            `json:"role"`
	EmergencyContact *emergencyContact `json:"emergencyContact,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, cfg *config.Config, rl *ratelimit.Limiter, clk clockwork.Clock) {
	if database != nil {
		queries = database.Queries
	}
	appConfig = cfg
	limiter = rl
	if clk != nil {
		clock = clk
	}
}

// POST /api/v1/auth/register
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	phone, err := normalizeOptionalPhone(req.Phone)
	if err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckSignup(ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("signup", req.Email, ip, result.Reason)
			writeRateLimited(w, result)
			return
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        phone,
		Role:         string(authz.RolePlayer),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			apiutil.WriteError(w, http.StatusBadRequest, "User already exists with this email", nil)
			return
		}
		logger.Error().Err(err).Msg("Failed to create user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account", err)
		return
	}
	if limiter != nil {
		limiter.RecordSignup(ip)
	}

	logger.Info().Int64("user_id", user.ID).Msg("User registered")
	writeToken(w, r, http.StatusCreated, user)
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckLogin(req.Email, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("login", req.Email, ip, result.Reason)
			writeRateLimited(w, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := q.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to log in", err)
		return
	}
	if err != nil || !VerifyPassword(user.PasswordHash, req.Password) {
		if limiter != nil && limiter.RecordLoginFailure(req.Email, ip) {
			ratelimit.LogRateLimitExceeded("login", req.Email, ip, "lockout_started")
		}
		apiutil.WriteError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if limiter != nil {
		limiter.ResetLogin(req.Email)
	}

	logger.Info().Int64("user_id", user.ID).Msg("User logged in")
	writeToken(w, r, http.StatusOK, user)
}

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
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

	authUser := authz.UserFromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := q.GetUserByID(ctx, authUser.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		logger.Error().Err(err).Int64("user_id", authUser.ID).Msg("Failed to load user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, NewUserResponse(user)); err != nil {
		logger.Error().Err(err).Msg("Failed to write user response")
	}
}

// PUT /api/v1/auth/profile
func HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
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

	var req profileUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	authUser := authz.UserFromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	current, err := q.GetUserByID(ctx, authUser.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		logger.Error().Err(err).Int64("user_id", authUser.ID).Msg("Failed to load user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	params, err := applyProfileUpdate(current, req)
	if err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	updated, err := q.UpdateUserProfile(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", authUser.ID).Msg("Failed to update profile")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, NewUserResponse(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write user response")
	}
}

func applyProfileUpdate(current dbgen.User, req profileUpdate) (dbgen.UpdateUserProfileParams, error) {
	params := dbgen.UpdateUserProfileParams{
		FirstName:             current.FirstName,
		LastName:              current.LastName,
		Phone:                 current.Phone,
		EmergencyContactName:  current.EmergencyContactName,
		EmergencyContactPhone: current.EmergencyContactPhone,
		ID:                    current.ID,
	}

	if req.FirstName != nil {
		params.FirstName = strings.TrimSpace(*req.FirstName)
		if params.FirstName == "" {
			return params, apiutil.FieldError{Field: "firstName", Reason: "is required"}
		}
	}
	if req.LastName != nil {
		params.LastName = strings.TrimSpace(*req.LastName)
		if params.LastName == "" {
			return params, apiutil.FieldError{Field: "lastName", Reason: "is required"}
		}
	}
	if req.Phone != nil {
		phone, err := normalizeOptionalPhone(req.Phone)
		if err != nil {
			return params, err
		}
		params.Phone = phone
	}
	if req.EmergencyContact != nil {
		if req.EmergencyContact.Name != nil {
			params.EmergencyContactName = apiutil.ToNullString(req.EmergencyContact.Name)
		}
		if req.EmergencyContact.Phone != nil {
			phone, err := normalizeOptionalPhone(req.EmergencyContact.Phone)
			if err != nil {
				return params, apiutil.FieldError{Field: "emergencyContact.phone", Reason: "must be a valid phone number"}
			}
			params.EmergencyContactPhone = phone
		}
	}
	return params, nil
}

func NewUserResponse(user dbgen.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     apiutil.NullStringPtr(user.Phone),
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.EmergencyContactName.Valid || user.EmergencyContactPhone.Valid {
		resp.EmergencyContact = &emergencyContact{
			Name:  apiutil.NullStringPtr(user.EmergencyContactName),
			Phone: apiutil.NullStringPtr(user.EmergencyContactPhone),
		}
	}
	return resp
}

// NormalizePhone parses raw as a phone number, defaulting to US numbering,
// and returns it in E.164 form.
func NormalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultPhoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", errors.New("invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func normalizeOptionalPhone(raw *string) (sql.NullString, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return sql.NullString{}, nil
	}
	phone, err := NormalizePhone(*raw)
	if err != nil {
		return sql.NullString{}, apiutil.FieldError{Field: "phone", Reason: "must be a valid phone number"}
	}
	return sql.NullString{String: phone, Valid: true}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func writeToken(w http.ResponseWriter, r *http.Request, status int, user dbgen.User) {
	logger := log.Ctx(r.Context())

	token, expiresAt, err := IssueToken(&authz.AuthUser{ID: user.ID, Role: authz.ParseRole(user.Role)})
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue auth token")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}
	SetAuthCookie(w, token, expiresAt)

	if err := apiutil.WriteJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      NewUserResponse(user),
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write token response")
	}
}

func writeRateLimited(w http.ResponseWriter, result ratelimit.LimitResult) {
	seconds := int(result.RetryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	apiutil.WriteError(w, http.StatusTooManyRequests, "Too many attempts, try again later", nil)
}

func clientIP(r *http.Request) string {
	trustProxy := appConfig != nil && appConfig.App.TrustProxy
	return ratelimit.GetClientIP(r, trustProxy)
}

func loadQueries() *dbgen.Queries {
	return queries
}
