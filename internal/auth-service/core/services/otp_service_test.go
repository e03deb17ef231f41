package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"dashdrop/internal/auth-service/core/myerrors"

	"github.com/stretchr/testify/require"
)

type fakeOtpStore struct {
	mu       sync.Mutex
	codes    map[string]string
	attempts map[string]int64
}

func newFakeOtpStore() *fakeOtpStore {
	return &fakeOtpStore{
		codes:    make(map[string]string),
		attempts: make(map[string]int64),
	}
}

func (f *fakeOtpStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[phone] = code
	delete(f.attempts, phone)
	return nil
}

func (f *fakeOtpStore) Get(ctx context.Context, phone string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[phone]
	if !ok {
		return "", myerrors.ErrOtpNotFound
	}
	return code, nil
}

func (f *fakeOtpStore) IncrAttempts(ctx context.Context, phone string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[phone]++
	return f.attempts[phone], nil
}

func (f *fakeOtpStore) Delete(ctx context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, phone)
	delete(f.attempts, phone)
	return nil
}

type fakeSms struct {
	mu    sync.Mutex
	codes []string
}

func (f *fakeSms) OtpIssued(ctx context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSms) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.codes) == 0 {
		return ""
	}
	return f.codes[len(f.codes)-1]
}

// wrongCode picks a code guaranteed not to match the issued one.
func wrongCode(sms *fakeSms) string {
	if sms.lastCode() == "000000" {
		return "111111"
	}
	return "000000"
}

func registeredRepo(t *testing.T) *fakeAuthRepo {
	t.Helper()
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, testSecret, testLogger(t))
	_, err := svc.RegisterDriver(context.Background(), validRegistration())
	require.NoError(t, err)
	return repo
}

func TestOtpIssueAndConfirm(t *testing.T) {
	repo := registeredRepo(t)
	store := newFakeOtpStore()
	sms := &fakeSms{}
	svc := NewOtpService(repo, store, sms, testLogger(t))

	phone := "+919876543210"
	require.NoError(t, svc.Issue(context.Background(), phone))

	code := sms.lastCode()
	require.Len(t, code, 6)

	require.NoError(t, svc.Confirm(context.Background(), phone, code))

	user, err := repo.GetUserByPhone(context.Background(), phone)
	require.NoError(t, err)
	require.True(t, user.PhoneVerified)

	// the code is single use
	require.ErrorIs(t, svc.Confirm(context.Background(), phone, code), myerrors.ErrOtpNotFound)
}

func TestOtpIssueUnknownPhone(t *testing.T) {
	svc := NewOtpService(newFakeAuthRepo(), newFakeOtpStore(), &fakeSms{}, testLogger(t))

	require.ErrorIs(t, svc.Issue(context.Background(), "+910000000000"), myerrors.ErrUserNotFound)
}

func TestOtpConfirmMismatch(t *testing.T) {
	repo := registeredRepo(t)
	store := newFakeOtpStore()
	sms := &fakeSms{}
	svc := NewOtpService(repo, store, sms, testLogger(t))

	phone := "+919876543210"
	require.NoError(t, svc.Issue(context.Background(), phone))

	require.ErrorIs(t, svc.Confirm(context.Background(), phone, wrongCode(sms)), myerrors.ErrOtpMismatch)

	// the right code still works after a failed attempt
	require.NoError(t, svc.Confirm(context.Background(), phone, sms.lastCode()))
}

func TestOtpConfirmTooManyAttempts(t *testing.T) {
	repo := registeredRepo(t)
	store := newFakeOtpStore()
	sms := &fakeSms{}
	svc := NewOtpService(repo, store, sms, testLogger(t))

	phone := "+919876543210"
	require.NoError(t, svc.Issue(context.Background(), phone))

	for i := 0; i < otpMaxAttempts-1; i++ {
		require.ErrorIs(t, svc.Confirm(context.Background(), phone, wrongCode(sms)), myerrors.ErrOtpMismatch)
	}
	require.ErrorIs(t, svc.Confirm(context.Background(), phone, wrongCode(sms)), myerrors.ErrOtpTooManyAttempts)

	// exhausting the budget invalidates the code entirely
	require.ErrorIs(t, svc.Confirm(context.Background(), phone, sms.lastCode()), myerrors.ErrOtpNotFound)
}

func TestOtpReissueResetsAttempts(t *testing.T) {
	repo := registeredRepo(t)
	store := newFakeOtpStore()
	sms := &fakeSms{}
	svc := NewOtpService(repo, store, sms, testLogger(t))

	phone := "+919876543210"
	require.NoError(t, svc.Issue(context.Background(), phone))
	require.ErrorIs(t, svc.Confirm(context.Background(), phone, wrongCode(sms)), myerrors.ErrOtpMismatch)

	require.NoError(t, svc.Issue(context.Background(), phone))
	require.Zero(t, store.attempts[phone])
	require.NoError(t, svc.Confirm(context.Background(), phone, sms.lastCode()))
}
