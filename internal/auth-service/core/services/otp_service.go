package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"dashdrop/internal/auth-service/core/myerrors"
	"dashdrop/internal/auth-service/core/ports/driven"
	"dashdrop/internal/mylogger"
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
)

type OtpService struct {
	repo  driven.IAuthRepo
	store driven.IOtpStore
	sms   driven.ISmsNotifier
	log   mylogger.Logger
}

func NewOtpService(repo driven.IAuthRepo, store driven.IOtpStore, sms driven.ISmsNotifier, log mylogger.Logger) *OtpService {
	return &OtpService{
		repo:  repo,
		store: store,
		sms:   sms,
		log:   log,
	}
}

// Issue generates a fresh 6-digit code for a registered phone. Re-issuing
// replaces the previous code and resets the attempt counter.
func (os *OtpService) Issue(ctx context.Context, phone string) error {
	log := os.log.Action("issueOtp")

	if _, err := os.repo.GetUserByPhone(ctx, phone); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp code: %w", err)
	}

	if err := os.store.Put(ctx, phone, code, otpTTL); err != nil {
		log.Error("cannot store otp", err)
		return err
	}

	if err := os.sms.OtpIssued(ctx, phone, code); err != nil {
		log.Error("cannot deliver otp sms", err)
		return err
	}

	log.Info("otp issued")
	return nil
}

// Confirm checks the code and marks the identity phone-verified. The code is
// single use.
func (os *OtpService) Confirm(ctx context.Context, phone, code string) error {
	log := os.log.Action("confirmOtp")

	stored, err := os.store.Get(ctx, phone)
	if err != nil {
		return err
	}

	if stored != code {
		attempts, incErr := os.store.IncrAttempts(ctx, phone)
		if incErr != nil {
			log.Error("cannot track otp attempt", incErr)
			return incErr
		}
		if attempts >= otpMaxAttempts {
			if delErr := os.store.Delete(ctx, phone); delErr != nil {
				log.Error("cannot invalidate otp", delErr)
			}
			return myerrors.ErrOtpTooManyAttempts
		}
		return myerrors.ErrOtpMismatch
	}

	user, err := os.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if err := os.repo.MarkPhoneVerified(ctx, user.ID); err != nil {
		log.Error("cannot mark phone verified", err)
		return err
	}

	if err := os.store.Delete(ctx, phone); err != nil {
		log.Error("cannot invalidate otp", err)
	}

	log.With("user_id", user.ID).Info("phone verified")
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
