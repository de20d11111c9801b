package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/authz"
)

// exposeErrorDetail controls whether error bodies carry the underlying error
// text. Only enabled in development.
var exposeErrorDetail bool

// SetExposeErrorDetail is called once at startup.
func SetExposeErrorDetail(enabled bool) {
	exposeErrorDetail = enabled
}

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes a JSON error body. err is attached as diagnostic detail
// in development only.
func WriteError(w http.ResponseWriter, status int, message string, err error) {
	body := errorResponse{Message: message}
	if exposeErrorDetail && err != nil {
		body.Error = err.Error()
	}
	_ = WriteJSON(w, status, body)
}

// WriteHandlerError writes err as a JSON error body. HandlerError and
// FieldError keep their status and message; anything else becomes a generic
// 500.
func WriteHandlerError(w http.ResponseWriter, err error) {
	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		WriteError(w, handlerErr.Status, handlerErr.Message, handlerErr.Err)
		return
	}
	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		WriteError(w, http.StatusBadRequest, fieldErr.Error(), nil)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", err)
}

// RequireRole checks the authenticated user in the request context against
// the allowed roles and writes 401/403 on failure.
func RequireRole(w http.ResponseWriter, r *http.Request, roles ...authz.Role) bool {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	err := authz.RequireRole(r.Context(), roles...)
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Str("path", r.URL.Path).Msg("Access denied: unauthenticated")
		WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
	case errors.Is(err, authz.ErrForbidden):
		logEvent := logger.Warn().Str("path", r.URL.Path)
		if user != nil {
			logEvent = logEvent.Int64("user_id", user.ID).Str("role", string(user.Role))
		}
		logEvent.Msg("Access denied: forbidden")
		WriteError(w, http.StatusForbidden, "You do not have permission to perform this action", nil)
	default:
		logger.Error().Err(err).Msg("Access denied: error")
		WriteError(w, http.StatusInternalServerError, "Failed to authorize request", err)
	}
	return false
}

// RequireAuthenticated is RequireRole with every role allowed.
func RequireAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	return RequireRole(w, r, authz.RolePlayer, authz.RoleCoach, authz.RoleAdmin)
}

// RequireOwnerOrAdmin writes 401/403 unless the caller is an admin or the
// user identified by ownerID.
func RequireOwnerOrAdmin(w http.ResponseWriter, r *http.Request, ownerID int64) bool {
	err := authz.RequireOwnerOrAdmin(r.Context(), ownerID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, authz.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
	default:
		log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Int64("owner_id", ownerID).Msg("Access denied: not owner")
		WriteError(w, http.StatusForbidden, "You do not have permission to perform this action", nil)
	}
	return false
}
