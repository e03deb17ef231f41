package notify

import (
	"context"

	"dashdrop/internal/mylogger"
)

// SmsNotifier is a development transport: it records the message instead of
// delivering it. A real SMS gateway adapter slots in behind the same port.
type SmsNotifier struct {
	log mylogger.Logger
}

func NewSmsNotifier(log mylogger.Logger) *SmsNotifier {
	return &SmsNotifier{log: log}
}

func (sn *SmsNotifier) OtpIssued(ctx context.Context, phone, code string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sn.log.Action("sendSms").
		WithGroup("details").
		With("to", phone, "code", code).
		Info("otp sms dispatched")
	return nil
}
