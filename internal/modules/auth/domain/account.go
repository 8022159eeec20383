package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleCitizen    Role = "CITIZEN"
	RoleCollector  Role = "COLLECTOR"
	RoleLeadership Role = "LEADERSHIP"
)

// Account is the single persisted identity. The pending OTP lives on the
// account row itself; only the latest issued code is ever valid.
type Account struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	District     *string
	Verified     bool
	OTP          *string
	OTPExpiresAt *time.Time
	OTPAttempts  int
	CreatedAt    time.Time
}

type CreateAccountParams struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	District     *string
	OTP          string
	OTPExpiresAt time.Time
}

// AccountRepo persists accounts. Phone is the primary lookup key.
// UpdateVerification replaces the whole verification state of one row in a
// single statement and resets the attempt counter, so a concurrent verify or
// resend always observes the latest committed code.
type AccountRepo interface {
	Create(ctx context.Context, p CreateAccountParams) (*Account, error)
	GetByPhone(ctx context.Context, phone string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	UpdateVerification(ctx context.Context, phone string, verified bool, otp *string, expiresAt *time.Time) (*Account, error)
	IncrementOTPAttempts(ctx context.Context, phone string) (int, error)
}
