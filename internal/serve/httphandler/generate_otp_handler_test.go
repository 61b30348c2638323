package httphandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/otp-prober/internal/serve/otpstore"
)

func Test_GenerateOTPHandler(t *testing.T) {
	t.Run("🎉 stores the generated OTP without returning it", func(t *testing.T) {
		mStore := &mockOTPStore{}
		mStore.On("SetOTP", "test", "1007").Return(true).Once()
		handler := GenerateOTPHandler{
			Store:       mStore,
			GenerateOTP: func() (string, error) { return "1007", nil },
		}

		r := chi.NewRouter()
		r.Get("/api/generate-otp/{username}", handler.ServeHTTP)

		req := httptest.NewRequest(http.MethodGet, "/api/generate-otp/test", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"message":"OTP generated"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "1007")
		mStore.AssertExpectations(t)
	})

	t.Run("unknown user still gets 201 and no account", func(t *testing.T) {
		store, err := otpstore.NewStore(otpstore.DefaultSize)
		require.NoError(t, err)
		store.AddAccount("test", "1")
		handler := GenerateOTPHandler{
			Store:       store,
			GenerateOTP: func() (string, error) { return "1007", nil },
		}

		r := chi.NewRouter()
		r.Get("/api/generate-otp/{username}", handler.ServeHTTP)

		req := httptest.NewRequest(http.MethodGet, "/api/generate-otp/ghost", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		_, ok := store.Get("ghost")
		assert.False(t, ok)
		assert.ErrorIs(t, store.ResetPassword("ghost", "1007", "password"), otpstore.ErrInvalidOTP)
	})

	t.Run("generator failure", func(t *testing.T) {
		mStore := &mockOTPStore{}
		handler := GenerateOTPHandler{
			Store:       mStore,
			GenerateOTP: func() (string, error) { return "", errors.New("no entropy") },
		}

		r := chi.NewRouter()
		r.Get("/api/generate-otp/{username}", handler.ServeHTTP)

		req := httptest.NewRequest(http.MethodGet, "/api/generate-otp/test", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Cannot generate OTP"}`, w.Body.String())
		mStore.AssertNotCalled(t, "SetOTP")
	})
}
