package notify

import (
	"context"
	"fmt"

	"dashdrop/internal/mylogger"
)

// EmailNotifier is a development transport: it records the message instead of
// delivering it. A real SMTP adapter slots in behind the same port.
type EmailNotifier struct {
	log mylogger.Logger
}

func NewEmailNotifier(log mylogger.Logger) *EmailNotifier {
	return &EmailNotifier{log: log}
}

func (en *EmailNotifier) VerificationDecided(ctx context.Context, email, driverName, status, notes string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	subject := fmt.Sprintf("Your driver profile is %s", status)
	en.log.Action("sendEmail").
		WithGroup("details").
		With("to", email, "subject", subject, "driver", driverName, "notes", notes).
		Info("verification decision email dispatched")
	return nil
}
