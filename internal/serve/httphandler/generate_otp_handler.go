package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/otp-prober/internal/serve/httperror"
)

// GenerateOTPHandler answers GET /api/generate-otp/{username}. The new OTP is never returned to the caller.
// Unknown users get the same 201 but no account is created for them.
type GenerateOTPHandler struct {
	Store       OTPStore
	GenerateOTP func() (string, error)
}

func (h GenerateOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	otp, err := h.GenerateOTP()
	if err != nil {
		httperror.InternalError(ctx, "Cannot generate OTP", err).Render(w)
		return
	}
	if h.Store.SetOTP(username, otp) {
		log.Ctx(ctx).Debugf("Generated OTP %s for user %q", otp, username)
	} else {
		log.Ctx(ctx).Debugf("No account for user %q, OTP not stored", username)
	}

	httperror.RenderJSON(w, http.StatusCreated, MessageResponse{Message: "OTP generated"})
}
