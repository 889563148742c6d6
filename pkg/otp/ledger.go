package otp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/republicadrc/memberkit/pkg/email"
	"github.com/republicadrc/memberkit/pkg/ratelimiter"
	"github.com/republicadrc/memberkit/pkg/sanitizer"
	"github.com/republicadrc/memberkit/pkg/validator"
)

// Ledger issues, verifies and consumes one-time codes. Verification and
// consumption are separate steps: a code is first verified by the person who
// received it, then consumed by the operation it unlocks (account creation,
// password reset). Consumption re-checks expiry, so a code verified just
// inside the window cannot be redeemed after it.
type Ledger struct {
	store       Store
	mailer      email.EmailSender
	limiter     ratelimiter.RateLimiter
	window      time.Duration
	maxAttempts int
	sendTimeout time.Duration
	log         *slog.Logger
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithWindow sets how long an issued code stays valid.
func WithWindow(window time.Duration) LedgerOption {
	return func(l *Ledger) {
		l.window = window
	}
}

// WithMaxAttempts sets how many wrong codes invalidate the challenge.
func WithMaxAttempts(max int) LedgerOption {
	return func(l *Ledger) {
		l.maxAttempts = max
	}
}

// WithSendTimeout bounds how long Issue waits on email delivery.
func WithSendTimeout(timeout time.Duration) LedgerOption {
	return func(l *Ledger) {
		l.sendTimeout = timeout
	}
}

// WithIssueLimiter throttles repeated Issue calls per email address.
func WithIssueLimiter(limiter ratelimiter.RateLimiter) LedgerOption {
	return func(l *Ledger) {
		l.limiter = limiter
	}
}

// WithLogger sets a custom logger for the ledger.
func WithLogger(log *slog.Logger) LedgerOption {
	return func(l *Ledger) {
		l.log = log
	}
}

// NewLedger creates a code ledger backed by the given store and mailer.
func NewLedger(store Store, mailer email.EmailSender, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		store:       store,
		mailer:      mailer,
		window:      10 * time.Minute,
		maxAttempts: 5,
		sendTimeout: 10 * time.Second,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Issue generates a fresh code for the email and delivers it. Any prior
// challenge for the same email is replaced, including a verified one, so
// requesting a new code always invalidates the old. When delivery fails the
// stored challenge is removed and ErrDeliveryFailed is returned.
func (l *Ledger) Issue(ctx context.Context, emailAddr string, purpose Purpose) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(
		validator.ValidEmail("email", emailAddr),
	); err != nil {
		return err
	}

	if l.limiter != nil {
		res, err := l.limiter.Allow(ctx, "otp:issue:"+emailAddr)
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
		if !res.Allowed() {
			l.log.InfoContext(ctx, "otp issue throttled",
				slog.String("email", emailAddr),
				slog.Duration("retry_after", res.RetryAfter()))
			return ErrTooManyRequests
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := time.Now()
	challenge := &Challenge{
		Email:     emailAddr,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(l.window),
		CreatedAt: now,
	}

	if err := l.store.Upsert(ctx, challenge); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, l.sendTimeout)
	defer cancel()

	if err := l.mailer.SendEmail(sendCtx, messageFor(purpose, emailAddr, code)); err != nil {
		// Delivery failed, so the caller sees an error while a code they never
		// received would otherwise sit in the store. Roll the challenge back.
		if delErr := l.store.Delete(ctx, emailAddr); delErr != nil {
			l.log.ErrorContext(ctx, "failed to roll back undelivered code",
				slog.String("email", emailAddr),
				slog.Any("error", delErr))
		}
		return errors.Join(ErrDeliveryFailed, err)
	}

	l.log.InfoContext(ctx, "otp issued",
		slog.String("email", emailAddr),
		slog.String("purpose", string(purpose)))
	return nil
}

// Verify checks a submitted code against the pending challenge. A matching
// code marks the challenge verified but leaves it in place for Consume.
// Wrong codes count toward the attempt cap; exceeding it deletes the
// challenge so it cannot be brute-forced.
func (l *Ledger) Verify(ctx context.Context, emailAddr, code string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(
		validator.ValidEmail("email", emailAddr),
		validator.OTPCode("otp", code),
	); err != nil {
		return err
	}

	challenge, err := l.store.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFoundOrExpired
		}
		return errors.Join(ErrStoreFailed, err)
	}

	if challenge.IsExpired() {
		_ = l.store.Delete(ctx, emailAddr)
		return ErrExpired
	}

	if challenge.Code != code {
		attempts, err := l.store.IncrementAttempts(ctx, emailAddr)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrStoreFailed, err)
		}
		if attempts >= l.maxAttempts {
			_ = l.store.Delete(ctx, emailAddr)
			l.log.WarnContext(ctx, "otp attempt cap exceeded", slog.String("email", emailAddr))
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	if err := l.store.MarkVerified(ctx, emailAddr); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFoundOrExpired
		}
		return errors.Join(ErrStoreFailed, err)
	}

	return nil
}

// Peek returns the pending challenge without consuming it. Expired challenges
// are deleted and reported as ErrExpired.
func (l *Ledger) Peek(ctx context.Context, emailAddr string) (*Challenge, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	challenge, err := l.store.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFoundOrExpired
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	if challenge.IsExpired() {
		_ = l.store.Delete(ctx, emailAddr)
		return nil, ErrExpired
	}

	return challenge, nil
}

// Consume redeems a verified challenge for the given purpose and deletes it.
// The challenge must be verified, unexpired and issued for the same purpose.
func (l *Ledger) Consume(ctx context.Context, emailAddr string, purpose Purpose) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	challenge, err := l.store.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFoundOrExpired
		}
		return errors.Join(ErrStoreFailed, err)
	}

	if challenge.IsExpired() {
		_ = l.store.Delete(ctx, emailAddr)
		return ErrExpired
	}

	if !challenge.Verified || challenge.Purpose != purpose {
		return ErrNotVerified
	}

	if err := l.store.Delete(ctx, emailAddr); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	l.log.InfoContext(ctx, "otp consumed",
		slog.String("email", emailAddr),
		slog.String("purpose", string(purpose)))
	return nil
}

func messageFor(purpose Purpose, emailAddr, code string) email.SendEmailParams {
	switch purpose {
	case PurposePasswordReset:
		return email.OTPPasswordResetMessage(emailAddr, code)
	default:
		return email.OTPSignupMessage(emailAddr, code)
	}
}
