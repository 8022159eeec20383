package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/security"
)

// SMSSender delivers a one-time code to a phone number.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// EmailSender delivers the welcome notice after signup.
type EmailSender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

const (
	CodeTTL         = 10 * time.Minute
	resendCooldown  = 60 * time.Second
	maxCodeAttempts = 5
	dispatchTimeout = 15 * time.Second
)

// Gate drives the verification state machine: unverified with a pending
// code, then verified once the code matches before its expiry. It holds no
// state of its own; all code fields live on the account row.
type Gate struct {
	accounts domain.AccountRepo
	sms      SMSSender
	email    EmailSender
	log      *zap.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

func NewGate(accounts domain.AccountRepo, sms SMSSender, email EmailSender, log *zap.Logger) *Gate {
	return &Gate{
		accounts: accounts,
		sms:      sms,
		email:    email,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock; tests use it to cross the expiry.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// NewCode pairs a fresh six-digit code with its expiry.
func (g *Gate) NewCode() (string, time.Time, error) {
	code, err := security.OTPCode()
	if err != nil {
		return "", time.Time{}, err
	}
	return code, g.now().Add(CodeTTL), nil
}

// IssueOnSignup dispatches the freshly generated code via SMS and a welcome
// notice via email. Both run detached from the request with a bounded
// timeout; delivery failures are logged and never roll back the account.
func (g *Gate) IssueOnSignup(acc *domain.Account, code string) {
	g.dispatch(func(ctx context.Context) {
		if err := g.sms.SendOTP(ctx, acc.Phone, code); err != nil {
			g.log.Warn("otp sms delivery failed", zap.String("phone", acc.Phone), zap.Error(err))
		}
	})
	g.dispatch(func(ctx context.Context) {
		if err := g.email.SendWelcome(ctx, acc.Email, acc.Name); err != nil {
			g.log.Warn("welcome email delivery failed", zap.String("email", acc.Email), zap.Error(err))
		}
	})
}

// Resend overwrites any prior pending code with a fresh one and re-dispatches
// via SMS only. At most one resend per cooldown window.
func (g *Gate) Resend(ctx context.Context, phone string) error {
	acc, err := g.accounts.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if acc.OTP != nil && acc.OTPExpiresAt != nil {
		issuedAt := acc.OTPExpiresAt.Add(-CodeTTL)
		if g.now().Sub(issuedAt) < resendCooldown {
			return domain.ErrResendThrottled
		}
	}

	code, exp, err := g.NewCode()
	if err != nil {
		return err
	}
	if _, err := g.accounts.UpdateVerification(ctx, phone, acc.Verified, &code, &exp); err != nil {
		return err
	}

	g.dispatch(func(ctx context.Context) {
		if err := g.sms.SendOTP(ctx, phone, code); err != nil {
			g.log.Warn("otp sms delivery failed", zap.String("phone", phone), zap.Error(err))
		}
	})
	return nil
}

// Verify matches the submitted code against the pending one (exact string
// equality) and checks the expiry. On success the code fields are cleared
// and the account becomes verified. After maxCodeAttempts failures the
// pending code is invalidated, forcing a resend.
func (g *Gate) Verify(ctx context.Context, phone, submitted string) (*domain.Account, error) {
	acc, err := g.accounts.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if acc.OTP == nil || acc.OTPExpiresAt == nil {
		return nil, domain.ErrInvalidOrExpiredCode
	}
	if g.now().After(*acc.OTPExpiresAt) {
		return nil, domain.ErrInvalidOrExpiredCode
	}
	if submitted != *acc.OTP {
		attempts, aerr := g.accounts.IncrementOTPAttempts(ctx, phone)
		if aerr == nil && attempts >= maxCodeAttempts {
			if _, cerr := g.accounts.UpdateVerification(ctx, phone, acc.Verified, nil, nil); cerr != nil && !errors.Is(cerr, domain.ErrNotFound) {
				g.log.Warn("failed to invalidate exhausted otp", zap.String("phone", phone), zap.Error(cerr))
			}
		}
		return nil, domain.ErrInvalidOrExpiredCode
	}

	return g.accounts.UpdateVerification(ctx, phone, true, nil, nil)
}

func (g *Gate) dispatch(fn func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Close drains in-flight notification dispatches; called on shutdown.
func (g *Gate) Close() {
	g.wg.Wait()
}
