package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"profile-service/internal/domain"
	"profile-service/internal/identity"
)

type fakeCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (s *fakeCodeStore) Put(ctx context.Context, phone, digest string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.codes[phone] = digest
	return nil
}

func (s *fakeCodeStore) Take(ctx context.Context, phone string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	digest, ok := s.codes[phone]
	delete(s.codes, phone)
	return digest, ok, nil
}

type fakeSender struct {
	to   string
	body string
	err  error
}

func (s *fakeSender) Send(ctx context.Context, to, body string) error {
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.body = body
	return nil
}

var codeRegex = regexp.MustCompile(`[0-9]{6}`)

func startAndExtractCode(t *testing.T, svc *VerifyService, sender *fakeSender, phone string) string {
	t.Helper()
	if _, err := svc.Start(context.Background(), phone, "sms"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	code := codeRegex.FindString(sender.body)
	if code == "" {
		t.Fatalf("no code found in message %q", sender.body)
	}
	return code
}

func TestVerifyService_StartSendsCode(t *testing.T) {
	store := newFakeCodeStore()
	sender := &fakeSender{}
	svc := NewVerifyService(store, sender, newFakeProfileRepo(), "secret", 5*time.Minute)

	result, err := svc.Start(context.Background(), "+65 9123 4567", "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if result.Channel != "sms" {
		t.Errorf("channel = %q, want sms", result.Channel)
	}
	if sender.to != "+6591234567" {
		t.Errorf("sent to %q, want normalized +6591234567", sender.to)
	}
	if codeRegex.FindString(sender.body) == "" {
		t.Errorf("message %q carries no 6-digit code", sender.body)
	}
	if _, ok := store.codes["+6591234567"]; !ok {
		t.Error("no digest stored for the phone")
	}
	if store.codes["+6591234567"] == codeRegex.FindString(sender.body) {
		t.Error("code stored in the clear")
	}
}

func TestVerifyService_StartInvalidPhone(t *testing.T) {
	svc := NewVerifyService(newFakeCodeStore(), &fakeSender{}, newFakeProfileRepo(), "secret", 5*time.Minute)

	if _, err := svc.Start(context.Background(), "12345", "sms"); !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("err = %v, want ErrInvalidPhone", err)
	}
}

func TestVerifyService_StartBadChannel(t *testing.T) {
	svc := NewVerifyService(newFakeCodeStore(), &fakeSender{}, newFakeProfileRepo(), "secret", 5*time.Minute)

	if _, err := svc.Start(context.Background(), "+6591234567", "carrier-pigeon"); !errors.Is(err, ErrBadChannel) {
		t.Errorf("err = %v, want ErrBadChannel", err)
	}
}

func TestVerifyService_CheckApproved(t *testing.T) {
	store := newFakeCodeStore()
	sender := &fakeSender{}
	repo := newFakeProfileRepo()
	svc := NewVerifyService(store, sender, repo, "secret", 5*time.Minute)

	code := startAndExtractCode(t, svc, sender, "+6591234567")

	result, err := svc.Check(context.Background(), "+6591234567", code)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("no access token issued")
	}
	if result.Profile == nil || result.Profile.Phone != "+6591234567" {
		t.Fatalf("profile = %+v, want row for +6591234567", result.Profile)
	}

	// The issued token must verify and carry the phone claim.
	claims, err := identity.NewJWTVerifier("secret").Verify(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("verifying issued token: %v", err)
	}
	if claims.Phone != "+6591234567" {
		t.Errorf("token phone = %q, want +6591234567", claims.Phone)
	}
}

func TestVerifyService_CheckWrongCode(t *testing.T) {
	store := newFakeCodeStore()
	sender := &fakeSender{}
	svc := NewVerifyService(store, sender, newFakeProfileRepo(), "secret", 5*time.Minute)

	startAndExtractCode(t, svc, sender, "+6591234567")

	if _, err := svc.Check(context.Background(), "+6591234567", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyService_CodeIsSingleUse(t *testing.T) {
	store := newFakeCodeStore()
	sender := &fakeSender{}
	svc := NewVerifyService(store, sender, newFakeProfileRepo(), "secret", 5*time.Minute)

	code := startAndExtractCode(t, svc, sender, "+6591234567")

	// A failed attempt consumes the code; the right code no longer works.
	if _, err := svc.Check(context.Background(), "+6591234567", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}
	if _, err := svc.Check(context.Background(), "+6591234567", code); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode after code was consumed", err)
	}
}

func TestVerifyService_CheckNoPendingCode(t *testing.T) {
	svc := NewVerifyService(newFakeCodeStore(), &fakeSender{}, newFakeProfileRepo(), "secret", 5*time.Minute)

	if _, err := svc.Check(context.Background(), "+6591234567", "123456"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyService_CheckKeepsExistingProfile(t *testing.T) {
	store := newFakeCodeStore()
	sender := &fakeSender{}
	repo := newFakeProfileRepo()
	svc := NewVerifyService(store, sender, repo, "secret", 5*time.Minute)

	seeded, err := repo.UpsertByPhone(context.Background(), "+6591234567",
		domain.ProfilePatch{FullName: strPtr("Ana Tan"), Age: intPtr(29)})
	if err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	code := startAndExtractCode(t, svc, sender, "+6591234567")
	result, err := svc.Check(context.Background(), "+6591234567", code)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if result.Profile.FullName == nil || *result.Profile.FullName != "Ana Tan" {
		t.Errorf("re-verification altered fullName: %v", result.Profile.FullName)
	}
	if result.Profile.ID != seeded.ID {
		t.Errorf("re-verification changed id from %d to %d", seeded.ID, result.Profile.ID)
	}
}
