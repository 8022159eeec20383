package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/infra"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeSMS struct {
	mu    sync.Mutex
	codes []string
	fail  bool
}

func (f *fakeSMS) SendOTP(_ context.Context, _, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	if f.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func (f *fakeSMS) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.codes) == 0 {
		return ""
	}
	return f.codes[len(f.codes)-1]
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) SendWelcome(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func newTestGate(t *testing.T) (*Gate, domain.AccountRepo, *fakeClock, *fakeSMS, *fakeEmail) {
	t.Helper()
	repo := infra.NewMemAccountRepo()
	clk := &fakeClock{t: time.Now()}
	sms := &fakeSMS{}
	email := &fakeEmail{}
	g := NewGate(repo, sms, email, zap.NewNop()).WithClock(clk.Now)
	return g, repo, clk, sms, email
}

func seedAccount(t *testing.T, g *Gate, repo domain.AccountRepo, phone string) (*domain.Account, string) {
	t.Helper()
	code, exp, err := g.NewCode()
	require.NoError(t, err)
	acc, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Name:         "Ravi Kumar",
		Email:        phone + "@example.in",
		Phone:        phone,
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleCitizen,
		OTP:          code,
		OTPExpiresAt: exp,
	})
	require.NoError(t, err)
	return acc, code
}

func TestNewCode_TenMinuteExpiry(t *testing.T) {
	t.Parallel()
	g, _, clk, _, _ := newTestGate(t)

	code, exp, err := g.NewCode()
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.Equal(t, clk.Now().Add(10*time.Minute), exp)
}

func TestVerify_Success(t *testing.T) {
	t.Parallel()
	g, repo, _, _, _ := newTestGate(t)
	ctx := context.Background()

	_, code := seedAccount(t, g, repo, "9000000001")

	acc, err := g.Verify(ctx, "9000000001", code)
	require.NoError(t, err)
	require.True(t, acc.Verified)
	require.Nil(t, acc.OTP)
	require.Nil(t, acc.OTPExpiresAt)
}

func TestVerify_WrongCode(t *testing.T) {
	t.Parallel()
	g, repo, _, _, _ := newTestGate(t)
	ctx := context.Background()

	_, code := seedAccount(t, g, repo, "9000000002")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err := g.Verify(ctx, "9000000002", wrong)
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	// account untouched
	acc, err := repo.GetByPhone(ctx, "9000000002")
	require.NoError(t, err)
	require.False(t, acc.Verified)
	require.NotNil(t, acc.OTP)
}

func TestVerify_ExpiredCode(t *testing.T) {
	t.Parallel()
	g, repo, clk, _, _ := newTestGate(t)
	ctx := context.Background()

	_, code := seedAccount(t, g, repo, "9000000003")

	clk.Advance(10*time.Minute + time.Second)

	// the value matches, but the clock has passed the expiry
	_, err := g.Verify(ctx, "9000000003", code)
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	acc, err := repo.GetByPhone(ctx, "9000000003")
	require.NoError(t, err)
	require.False(t, acc.Verified)
}

func TestVerify_UnknownPhone(t *testing.T) {
	t.Parallel()
	g, _, _, _, _ := newTestGate(t)

	_, err := g.Verify(context.Background(), "9999999999", "123456")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerify_AttemptLimit(t *testing.T) {
	t.Parallel()
	g, repo, _, _, _ := newTestGate(t)
	ctx := context.Background()

	_, code := seedAccount(t, g, repo, "9000000004")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < maxCodeAttempts; i++ {
		_, err := g.Verify(ctx, "9000000004", wrong)
		require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)
	}

	// the pending code is gone; even the right value no longer verifies
	_, err := g.Verify(ctx, "9000000004", code)
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	acc, err := repo.GetByPhone(ctx, "9000000004")
	require.NoError(t, err)
	require.Nil(t, acc.OTP)
	require.False(t, acc.Verified)
}

func TestResend_InvalidatesOldCode(t *testing.T) {
	t.Parallel()
	g, repo, clk, sms, _ := newTestGate(t)
	ctx := context.Background()

	_, oldCode := seedAccount(t, g, repo, "9000000005")

	clk.Advance(2 * time.Minute)
	require.NoError(t, g.Resend(ctx, "9000000005"))
	g.Close()

	newCode := sms.last()
	require.Len(t, newCode, 6)

	if newCode != oldCode {
		_, err := g.Verify(ctx, "9000000005", oldCode)
		require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)
	}

	acc, err := g.Verify(ctx, "9000000005", newCode)
	require.NoError(t, err)
	require.True(t, acc.Verified)
}

func TestResend_Throttled(t *testing.T) {
	t.Parallel()
	g, repo, clk, _, _ := newTestGate(t)
	ctx := context.Background()

	seedAccount(t, g, repo, "9000000006")

	// inside the cooldown window of the signup code
	err := g.Resend(ctx, "9000000006")
	require.ErrorIs(t, err, domain.ErrResendThrottled)

	clk.Advance(61 * time.Second)
	require.NoError(t, g.Resend(ctx, "9000000006"))
	g.Close()
}

func TestResend_UnknownPhone(t *testing.T) {
	t.Parallel()
	g, _, _, _, _ := newTestGate(t)

	err := g.Resend(context.Background(), "9999999999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueOnSignup_DeliversBothChannels(t *testing.T) {
	t.Parallel()
	g, repo, _, sms, email := newTestGate(t)

	acc, code := seedAccount(t, g, repo, "9000000007")
	g.IssueOnSignup(acc, code)
	g.Close()

	require.Equal(t, []string{code}, sms.codes)
	require.Equal(t, []string{acc.Email}, email.sent)
}

func TestIssueOnSignup_DeliveryFailureIsSilent(t *testing.T) {
	t.Parallel()
	g, repo, _, sms, _ := newTestGate(t)
	sms.fail = true

	acc, code := seedAccount(t, g, repo, "9000000008")
	g.IssueOnSignup(acc, code)
	g.Close()

	// the account survives a failed dispatch
	got, err := repo.GetByPhone(context.Background(), "9000000008")
	require.NoError(t, err)
	require.NotNil(t, got.OTP)
}
