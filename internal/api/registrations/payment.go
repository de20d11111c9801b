package registrations

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
)

type paymentUpdate struct {
	AmountPaidCents *int64  `json:"amountPaidCents" validate:"omitempty,gte=0"`
	PaymentMethod   *string `json:"paymentMethod" validate:"omitempty,payment_method"`
	TransactionID   *string `json:"transactionId" validate:"omitempty,max=200"`
	PaymentStatus   *string `json:"paymentStatus" validate:"omitempty,payment_status"`
}

// PUT /api/v1/registrations/{id}/payment
func HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
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

	var req paymentUpdate
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

	params := dbgen.UpdateRegistrationPaymentParams{
		AmountPaidCents: current.AmountPaidCents,
		PaymentMethod:   current.PaymentMethod,
		TransactionID:   current.TransactionID,
		PaymentStatus:   current.PaymentStatus,
		ID:              current.ID,
	}
	if req.AmountPaidCents != nil {
		params.AmountPaidCents = *req.AmountPaidCents
	}
	if req.PaymentMethod != nil {
		params.PaymentMethod = *req.PaymentMethod
	}
	if req.TransactionID != nil {
		params.TransactionID = strings.TrimSpace(*req.TransactionID)
	}
	if req.PaymentStatus != nil {
		params.PaymentStatus = *req.PaymentStatus
	}

	updated, err := q.UpdateRegistrationPayment(ctx, params)
	if err != nil {
		writeRegistrationError(w, r, "Failed to update payment", err)
		return
	}

	logger.Info().
		Int64("registration_id", updated.ID).
		Str("payment_status", updated.PaymentStatus).
		Int64("amount_paid_cents", updated.AmountPaidCents).
		Msg("Registration payment updated")
	writeRegistration(ctx, w, r, q, http.StatusOK, updated)
}
