package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stellar/go-stellar-sdk/support/http/httpdecode"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/serve/httperror"
	"github.com/stellar/otp-prober/internal/serve/otpstore"
)

const (
	resetPinResultAccepted  = "accepted"
	resetPinResultRejected  = "rejected"
	resetPinResultMalformed = "malformed"
)

// OTPStore is the account storage behind the reset-pin and generate-otp routes.
type OTPStore interface {
	SetOTP(username, otp string) bool
	ResetPassword(username, otp, password string) error
}

var _ OTPStore = (*otpstore.Store)(nil)

type ResetPinRequest struct {
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ResetPinHandler answers POST /api/reset-pin/{username}: 201 when the OTP is right, 404 otherwise.
type ResetPinHandler struct {
	Store          OTPStore
	MonitorService monitor.MonitorServiceInterface
}

func (h ResetPinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	var reqBody ResetPinRequest
	if err := httpdecode.DecodeJSON(r, &reqBody); err != nil {
		h.monitorAttempt(ctx, resetPinResultMalformed)
		httperror.BadRequest("Invalid request body", err).Render(w)
		return
	}

	err := h.Store.ResetPassword(username, reqBody.OTP, reqBody.Password)
	if err != nil {
		if errors.Is(err, otpstore.ErrInvalidOTP) {
			h.monitorAttempt(ctx, resetPinResultRejected)
			httperror.NotFound("Invalid OTP", err).Render(w)
			return
		}
		httperror.InternalError(ctx, "Cannot reset the password", err).Render(w)
		return
	}

	log.Ctx(ctx).Infof("Password reset for user %q", username)
	h.monitorAttempt(ctx, resetPinResultAccepted)
	httperror.RenderJSON(w, http.StatusCreated, MessageResponse{Message: "OK"})
}

func (h ResetPinHandler) monitorAttempt(ctx context.Context, result string) {
	if h.MonitorService == nil {
		return
	}
	labels := monitor.ResetPinLabels{Result: result}
	if err := h.MonitorService.MonitorCounters(monitor.ResetPinAttemptsCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor reset pin attempt: %s", err)
	}
}
