package myerrors

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrEmailRegistered = errors.New("email already registered")
	ErrPhoneRegistered = errors.New("phone already registered")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrWrongPassword   = errors.New("wrong password")
	ErrUserNotFound    = errors.New("user not found")

	ErrOtpNotFound        = errors.New("otp not issued or expired")
	ErrOtpMismatch        = errors.New("otp code does not match")
	ErrOtpTooManyAttempts = errors.New("too many otp attempts")
)
