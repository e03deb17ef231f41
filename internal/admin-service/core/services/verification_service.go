package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dashdrop/internal/admin-service/core/domain/model"
	"dashdrop/internal/admin-service/core/myerrors"
	"dashdrop/internal/admin-service/core/ports/driven"
	"dashdrop/internal/mylogger"
)

const notifyTimeout = 10 * time.Second

type VerificationService struct {
	repo     driven.IVerificationRepo
	notifier driven.IDecisionNotifier
	log      mylogger.Logger
}

func NewVerificationService(repo driven.IVerificationRepo, notifier driven.IDecisionNotifier, log mylogger.Logger) *VerificationService {
	return &VerificationService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Decide records an admin verdict on a driver profile and notifies the driver.
// The notification is best effort; a delivery failure never fails the verdict.
func (vs *VerificationService) Decide(ctx context.Context, driverID string, decision model.Decision) (model.DriverVerification, error) {
	log := vs.log.Action("decideVerification").With("driver_id", driverID, "status", decision.Status)

	if !model.ValidDecision(decision.Status) {
		return model.DriverVerification{}, fmt.Errorf("%w: unknown status %q", myerrors.ErrValidation, decision.Status)
	}

	decision.Notes = strings.TrimSpace(decision.Notes)
	switch decision.Status {
	case model.VerificationRejected:
		if decision.Notes == "" {
			return model.DriverVerification{}, myerrors.ErrNotesRequired
		}
	case model.VerificationVerified:
		if decision.Notes == "" {
			decision.Notes = model.DefaultVerifiedNotes
		}
	}

	updated, err := vs.repo.Decide(ctx, driverID, decision)
	if err != nil {
		return model.DriverVerification{}, err
	}
	log.Info("verification decision stored")

	// Only a final verdict is worth an email; sending the profile back to
	// the review queue is invisible to the driver.
	if decision.Status == model.VerificationVerified || decision.Status == model.VerificationRejected {
		go vs.notify(updated, decision)
	}

	return updated, nil
}

// Reconsider reopens a rejected profile for another review pass.
func (vs *VerificationService) Reconsider(ctx context.Context, driverID string) (model.DriverVerification, error) {
	log := vs.log.Action("reconsiderVerification").With("driver_id", driverID)

	updated, err := vs.repo.Reconsider(ctx, driverID)
	if err != nil {
		return model.DriverVerification{}, err
	}
	log.Info("driver returned to review queue")
	return updated, nil
}

func (vs *VerificationService) ListPending(ctx context.Context) ([]model.DriverVerification, error) {
	return vs.repo.ListPending(ctx)
}

func (vs *VerificationService) GetDriver(ctx context.Context, driverID string) (model.DriverVerification, error) {
	return vs.repo.GetDriver(ctx, driverID)
}

func (vs *VerificationService) DeleteDriver(ctx context.Context, driverID string) error {
	log := vs.log.Action("deleteDriver").With("driver_id", driverID)

	if err := vs.repo.DeleteDriver(ctx, driverID); err != nil {
		return err
	}
	log.Info("driver and identity removed")
	return nil
}

func (vs *VerificationService) notify(d model.DriverVerification, decision model.Decision) {
	log := vs.log.Action("notifyVerificationDecision").With("driver_id", d.DriverID)

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	email, err := vs.repo.GetDriverEmail(ctx, d.DriverID)
	if err != nil {
		log.Error("cannot resolve driver email", err)
		return
	}

	if err := vs.notifier.VerificationDecided(ctx, email, d.Name, decision.Status, decision.Notes); err != nil {
		log.Error("cannot send verification notification", err)
	}
}
