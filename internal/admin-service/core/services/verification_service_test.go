package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dashdrop/internal/admin-service/core/domain/model"
	"dashdrop/internal/admin-service/core/myerrors"
	"dashdrop/internal/mylogger"

	"github.com/stretchr/testify/require"
)

type fakeVerificationRepo struct {
	mu      sync.Mutex
	drivers map[string]*model.DriverVerification
	emails  map[string]string
	deleted []string
}

func newFakeVerificationRepo(drivers ...model.DriverVerification) *fakeVerificationRepo {
	f := &fakeVerificationRepo{
		drivers: make(map[string]*model.DriverVerification),
		emails:  make(map[string]string),
	}
	for i := range drivers {
		d := drivers[i]
		f.drivers[d.DriverID] = &d
		f.emails[d.DriverID] = d.Name + "@example.com"
	}
	return f
}

func (f *fakeVerificationRepo) GetDriver(ctx context.Context, driverID string) (model.DriverVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drivers[driverID]
	if !ok {
		return model.DriverVerification{}, myerrors.ErrDriverNotFound
	}
	return *d, nil
}

func (f *fakeVerificationRepo) GetDriverEmail(ctx context.Context, driverID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.emails[driverID]
	if !ok {
		return "", myerrors.ErrDriverNotFound
	}
	return email, nil
}

func (f *fakeVerificationRepo) ListPending(ctx context.Context) ([]model.DriverVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.DriverVerification
	for _, d := range f.drivers {
		if d.VerificationStatus == model.VerificationPendingVerification {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeVerificationRepo) Decide(ctx context.Context, driverID string, decision model.Decision) (model.DriverVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drivers[driverID]
	if !ok {
		return model.DriverVerification{}, myerrors.ErrDriverNotFound
	}
	d.VerificationStatus = decision.Status
	d.VerificationNotes = decision.Notes
	d.VerifiedBy = decision.AdminID
	if decision.Status == model.VerificationVerified {
		now := time.Now()
		d.VerifiedAt = &now
	} else {
		d.VerifiedAt = nil
	}
	return *d, nil
}

func (f *fakeVerificationRepo) Reconsider(ctx context.Context, driverID string) (model.DriverVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drivers[driverID]
	if !ok {
		return model.DriverVerification{}, myerrors.ErrDriverNotFound
	}
	if d.VerificationStatus != model.VerificationRejected {
		return model.DriverVerification{}, myerrors.ErrIllegalTransition
	}
	d.VerificationStatus = model.VerificationPendingVerification
	return *d, nil
}

func (f *fakeVerificationRepo) DeleteDriver(ctx context.Context, driverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.drivers[driverID]; !ok {
		return myerrors.ErrDriverNotFound
	}
	delete(f.drivers, driverID)
	f.deleted = append(f.deleted, driverID)
	return nil
}

type fakeNotifier struct {
	sent chan string // "<email>:<status>"
	fail bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 4)}
}

func (f *fakeNotifier) VerificationDecided(ctx context.Context, email, driverName, status, notes string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent <- email + ":" + status
	return nil
}

func pendingDriver(id string) model.DriverVerification {
	return model.DriverVerification{
		DriverID:           id,
		UserID:             "user-" + id,
		Name:               "Ravi",
		Phone:              "+919876543210",
		VehicleType:        "bike",
		Documents:          map[string]string{},
		VerificationStatus: model.VerificationPendingVerification,
	}
}

func newTestService(t *testing.T, repo *fakeVerificationRepo, notifier *fakeNotifier) *VerificationService {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)
	return NewVerificationService(repo, notifier, log)
}

func awaitNotification(t *testing.T, notifier *fakeNotifier) string {
	t.Helper()
	select {
	case s := <-notifier.sent:
		return s
	case <-time.After(time.Second):
		t.Fatal("no notification sent")
		return ""
	}
}

func TestDecideVerified(t *testing.T) {
	repo := newFakeVerificationRepo(pendingDriver("d1"))
	notifier := newFakeNotifier()
	svc := newTestService(t, repo, notifier)

	updated, err := svc.Decide(context.Background(), "d1", model.Decision{
		Status:  model.VerificationVerified,
		AdminID: "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, model.VerificationVerified, updated.VerificationStatus)
	require.Equal(t, model.DefaultVerifiedNotes, updated.VerificationNotes)
	require.NotNil(t, updated.VerifiedAt)
	require.Equal(t, "admin-1", updated.VerifiedBy)

	require.Equal(t, "Ravi@example.com:verified", awaitNotification(t, notifier))
}

func TestDecideRejectedRequiresNotes(t *testing.T) {
	repo := newFakeVerificationRepo(pendingDriver("d1"))
	svc := newTestService(t, repo, newFakeNotifier())

	_, err := svc.Decide(context.Background(), "d1", model.Decision{
		Status:  model.VerificationRejected,
		Notes:   "   ",
		AdminID: "admin-1",
	})
	require.ErrorIs(t, err, myerrors.ErrNotesRequired)

	// the profile stays untouched
	stored, err := svc.GetDriver(context.Background(), "d1")
	require.NoError(t, err)
	require.Equal(t, model.VerificationPendingVerification, stored.VerificationStatus)
}

func TestDecideRejectedWithNotes(t *testing.T) {
	repo := newFakeVerificationRepo(pendingDriver("d1"))
	notifier := newFakeNotifier()
	svc := newTestService(t, repo, notifier)

	updated, err := svc.Decide(context.Background(), "d1", model.Decision{
		Status:  model.VerificationRejected,
		Notes:   "license photo is unreadable",
		AdminID: "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, model.VerificationRejected, updated.VerificationStatus)
	require.Nil(t, updated.VerifiedAt)

	require.Equal(t, "Ravi@example.com:rejected", awaitNotification(t, notifier))
}

func TestDecideBackToReviewSkipsNotification(t *testing.T) {
	rejected := pendingDriver("d1")
	rejected.VerificationStatus = model.VerificationRejected
	repo := newFakeVerificationRepo(rejected)
	notifier := newFakeNotifier()
	svc := newTestService(t, repo, notifier)

	updated, err := svc.Decide(context.Background(), "d1", model.Decision{
		Status:  model.VerificationPendingVerification,
		AdminID: "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, model.VerificationPendingVerification, updated.VerificationStatus)

	select {
	case s := <-notifier.sent:
		t.Fatalf("unexpected notification %q", s)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDecideUnknownStatus(t *testing.T) {
	svc := newTestService(t, newFakeVerificationRepo(pendingDriver("d1")), newFakeNotifier())

	_, err := svc.Decide(context.Background(), "d1", model.Decision{Status: "approved"})
	require.ErrorIs(t, err, myerrors.ErrValidation)
}

func TestDecideUnknownDriver(t *testing.T) {
	svc := newTestService(t, newFakeVerificationRepo(), newFakeNotifier())

	_, err := svc.Decide(context.Background(), "missing", model.Decision{
		Status: model.VerificationVerified,
	})
	require.ErrorIs(t, err, myerrors.ErrDriverNotFound)
}

func TestDecideSurvivesNotifierFailure(t *testing.T) {
	repo := newFakeVerificationRepo(pendingDriver("d1"))
	notifier := newFakeNotifier()
	notifier.fail = true
	svc := newTestService(t, repo, notifier)

	updated, err := svc.Decide(context.Background(), "d1", model.Decision{
		Status:  model.VerificationVerified,
		AdminID: "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, model.VerificationVerified, updated.VerificationStatus)
}

func TestReconsiderOnlyFromRejected(t *testing.T) {
	rejected := pendingDriver("d1")
	rejected.VerificationStatus = model.VerificationRejected
	repo := newFakeVerificationRepo(rejected, pendingDriver("d2"))
	svc := newTestService(t, repo, newFakeNotifier())

	updated, err := svc.Reconsider(context.Background(), "d1")
	require.NoError(t, err)
	require.Equal(t, model.VerificationPendingVerification, updated.VerificationStatus)

	_, err = svc.Reconsider(context.Background(), "d2")
	require.ErrorIs(t, err, myerrors.ErrIllegalTransition)

	_, err = svc.Reconsider(context.Background(), "missing")
	require.ErrorIs(t, err, myerrors.ErrDriverNotFound)
}

func TestListPending(t *testing.T) {
	verified := pendingDriver("d2")
	verified.VerificationStatus = model.VerificationVerified
	repo := newFakeVerificationRepo(pendingDriver("d1"), verified)
	svc := newTestService(t, repo, newFakeNotifier())

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "d1", pending[0].DriverID)
}

func TestDeleteDriver(t *testing.T) {
	repo := newFakeVerificationRepo(pendingDriver("d1"))
	svc := newTestService(t, repo, newFakeNotifier())

	require.NoError(t, svc.DeleteDriver(context.Background(), "d1"))
	require.Equal(t, []string{"d1"}, repo.deleted)

	require.ErrorIs(t, svc.DeleteDriver(context.Background(), "d1"), myerrors.ErrDriverNotFound)
}
