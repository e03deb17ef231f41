package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"dashdrop/internal/auth-service/core/myerrors"
)

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status code.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

func statusFromErr(err error) (int, error) {
	switch {
	case errors.Is(err, myerrors.ErrValidation):
		return http.StatusBadRequest, err
	case errors.Is(err, myerrors.ErrEmailRegistered), errors.Is(err, myerrors.ErrPhoneRegistered):
		return http.StatusConflict, err
	case errors.Is(err, myerrors.ErrUnknownEmail), errors.Is(err, myerrors.ErrWrongPassword):
		return http.StatusUnauthorized, errors.New("invalid credentials")
	case errors.Is(err, myerrors.ErrUserNotFound):
		return http.StatusNotFound, err
	case errors.Is(err, myerrors.ErrOtpNotFound), errors.Is(err, myerrors.ErrOtpMismatch):
		return http.StatusBadRequest, err
	case errors.Is(err, myerrors.ErrOtpTooManyAttempts):
		return http.StatusTooManyRequests, err
	default:
		return http.StatusInternalServerError, errors.New("internal error, please try again later")
	}
}

// serviceError maps a service-layer error to its HTTP status and writes it.
func serviceError(w http.ResponseWriter, err error) {
	code, body := statusFromErr(err)
	jsonError(w, code, body)
}
