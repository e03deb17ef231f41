package driven

import (
	"context"
	"time"
)

// IOtpStore keeps issued codes with a TTL and an attempt counter.
type IOtpStore interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	// IncrAttempts bumps and returns the failed-attempt counter for the phone.
	IncrAttempts(ctx context.Context, phone string) (int64, error)
	Delete(ctx context.Context, phone string) error
}

// ISmsNotifier delivers the code to the driver's phone.
type ISmsNotifier interface {
	OtpIssued(ctx context.Context, phone, code string) error
}
