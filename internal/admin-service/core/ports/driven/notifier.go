package driven

import "context"

// IDecisionNotifier tells the driver about a verification verdict.
type IDecisionNotifier interface {
	VerificationDecided(ctx context.Context, email, driverName, status, notes string) error
}
