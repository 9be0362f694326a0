package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"profile-service/internal/domain"
	"profile-service/internal/otp"
	"profile-service/internal/repository"
	"profile-service/internal/sms"
	"profile-service/pkg/phone"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrBadChannel   = errors.New("unsupported delivery channel")
	// ErrInvalidCode covers wrong, expired and already-used codes alike; the
	// caller never learns which.
	ErrInvalidCode = errors.New("invalid or expired code")
)

// VerifyService runs the one-time-passcode flow: Start sends a code by SMS,
// Check trades a correct code for a signed bearer token.
type VerifyService struct {
	codes       otp.Store
	sender      sms.Sender
	profileRepo repository.ProfileRepository
	jwtSecret   []byte
	codeTTL     time.Duration
	tokenTTL    time.Duration
}

func NewVerifyService(codes otp.Store, sender sms.Sender, profileRepo repository.ProfileRepository, jwtSecret string, codeTTL time.Duration) *VerifyService {
	return &VerifyService{
		codes:       codes,
		sender:      sender,
		profileRepo: profileRepo,
		jwtSecret:   []byte(jwtSecret),
		codeTTL:     codeTTL,
		tokenTTL:    24 * time.Hour,
	}
}

type StartResult struct {
	VerificationID uuid.UUID `json:"verificationId"`
	Channel        string    `json:"channel"`
}

type CheckResult struct {
	AccessToken string          `json:"accessToken"`
	Profile     *domain.Profile `json:"profile"`
}

// Start generates a one-time code for the phone number, stores its digest
// with a TTL and dispatches it over the requested channel.
func (s *VerifyService) Start(ctx context.Context, rawPhone, channel string) (*StartResult, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	if channel == "" {
		channel = "sms"
	}
	if channel != "sms" {
		return nil, ErrBadChannel
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("generating code: %w", err)
	}
	digest, err := otp.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("hashing code: %w", err)
	}

	if err := s.codes.Put(ctx, normalized, digest, s.codeTTL); err != nil {
		return nil, fmt.Errorf("storing code: %w", err)
	}

	if err := s.sender.Send(ctx, normalized, fmt.Sprintf("Your verification code is %s", code)); err != nil {
		return nil, fmt.Errorf("sending code: %w", err)
	}

	return &StartResult{VerificationID: uuid.New(), Channel: channel}, nil
}

// Check consumes the pending code for the phone number. On approval it
// ensures a profile row exists (never touching an existing one) and issues
// a bearer token carrying the verified phone.
func (s *VerifyService) Check(ctx context.Context, rawPhone, code string) (*CheckResult, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	digest, ok, err := s.codes.Take(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("loading code: %w", err)
	}
	if !ok || !otp.VerifyCode(code, digest) {
		return nil, ErrInvalidCode
	}

	profile, err := s.profileRepo.EnsureByPhone(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("ensuring profile: %w", err)
	}

	token, err := s.generateToken(normalized)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &CheckResult{AccessToken: token, Profile: profile}, nil
}

func (s *VerifyService) generateToken(phoneNumber string) (string, error) {
	claims := jwt.MapClaims{
		"phone_number": phoneNumber,
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
