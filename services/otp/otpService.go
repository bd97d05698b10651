package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"enrollment-gateway/logger"
	"enrollment-gateway/utils"
)

// ErrInvalidRecipient is returned when the phone does not normalize to a
// valid 10-digit local mobile number.
var ErrInvalidRecipient = errors.New("invalid phone number")

// VerifyReason is the failure discriminator for Verify
type VerifyReason string

const (
	ReasonNotFound VerifyReason = "not-found"
	ReasonExpired  VerifyReason = "expired"
	ReasonMismatch VerifyReason = "mismatch"
)

// VerifyResult is the outcome of a verification attempt
type VerifyResult struct {
	Verified bool
	Reason   VerifyReason
}

// Notifier delivers a code to a phone number. Delivery is best-effort and
// runs off the request path; its outcome never changes the issue result.
type Notifier interface {
	SendOTP(phone, code string) error
}

// Recorder receives the outcome of each delivery attempt
type Recorder interface {
	Record(phone, code string, err error)
}

// record is one outstanding OTP, keyed by normalized phone
type record struct {
	code      string
	expiresAt time.Time
}

// Service owns the in-memory OTP store. State is process-local and
// ephemeral: a restart drops all outstanding codes, which matches the scope
// of this service (no cross-instance OTP synchronization).
type Service struct {
	mu       sync.Mutex
	records  map[string]record
	verified map[string]struct{}

	ttl      time.Duration
	notifier Notifier
	recorder Recorder
}

// NewOTPService creates a new OTP service with the given code TTL
func NewOTPService(ttl time.Duration, notifier Notifier, recorder Recorder) *Service {
	return &Service{
		records:  make(map[string]record),
		verified: make(map[string]struct{}),
		ttl:      ttl,
		notifier: notifier,
		recorder: recorder,
	}
}

// GenerateOTP generates a uniformly random 6-digit code. Leading zeros are
// allowed: the value space is [0, 999999], formatted to a fixed width.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates and stores a new OTP for the phone number and dispatches
// delivery in the background. Issuing again for the same phone overwrites
// the outstanding code. Returns the code and its expiry; the code is for
// delivery only and must not be written to the HTTP response.
func (s *Service) Issue(phone string) (string, time.Time, error) {
	phone = utils.NormalizePhone(phone)
	if !utils.ValidatePhone(phone) {
		return "", time.Time{}, ErrInvalidRecipient
	}

	code, err := GenerateOTP()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := time.Now().Add(s.ttl)

	s.mu.Lock()
	s.records[phone] = record{
		code:      code,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()

	// Fire-and-forget delivery; the issuing request never waits on it
	go s.deliver(phone, code)

	return code, expiresAt, nil
}

// Verify checks the submitted code against the outstanding record. A
// successful verification consumes the record: the same code can never
// verify twice. Expired records are evicted on sight.
func (s *Service) Verify(phone, submitted string) VerifyResult {
	phone = utils.NormalizePhone(phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[phone]
	if !ok {
		return VerifyResult{Verified: false, Reason: ReasonNotFound}
	}

	if !time.Now().Before(rec.expiresAt) {
		delete(s.records, phone)
		return VerifyResult{Verified: false, Reason: ReasonExpired}
	}

	// Exact string equality: "012345" must not match "12345"
	if rec.code != submitted {
		return VerifyResult{Verified: false, Reason: ReasonMismatch}
	}

	delete(s.records, phone)
	s.verified[phone] = struct{}{}
	return VerifyResult{Verified: true}
}

// WasVerified reports whether the phone completed verification at least once
// in this process lifetime. Advisory only; the set carries no expiry.
func (s *Service) WasVerified(phone string) bool {
	phone = utils.NormalizePhone(phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.verified[phone]
	return ok
}

// CleanupExpired evicts expired records. Lazy expiry in Verify is already
// correct on its own; this only bounds memory growth under abandoned
// verifications.
func (s *Service) CleanupExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for phone, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, phone)
		}
	}
}

func (s *Service) deliver(phone, code string) {
	err := s.notifier.SendOTP(phone, code)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send OTP to %s", phone), err)
	} else {
		logger.Success(fmt.Sprintf("OTP sent to %s", phone))
	}
	if s.recorder != nil {
		s.recorder.Record(phone, code, err)
	}
}
