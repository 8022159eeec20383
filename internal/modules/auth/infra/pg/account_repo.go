package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
)

const accountColumns = `id, name, email, phone, password_hash, role, district,
          verified, otp, otp_expires_at, otp_attempts, created_at`

type AccountRepo struct{ db *pgxpool.Pool }

func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.PasswordHash, &a.Role,
		&a.District, &a.Verified, &a.OTP, &a.OTPExpiresAt, &a.OTPAttempts, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, p domain.CreateAccountParams) (*domain.Account, error) {
	q := `
INSERT INTO accounts (id, name, email, phone, password_hash, role, district, otp, otp_expires_at)
VALUES ($1, $2, LOWER($3), $4, $5, $6, $7, $8, $9)
RETURNING ` + accountColumns
	row := r.db.QueryRow(ctx, q, uuid.New().String(), p.Name, p.Email, p.Phone,
		p.PasswordHash, p.Role, p.District, p.OTP, p.OTPExpiresAt)
	a, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateContact
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) GetByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE phone=$1`, phone)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateVerification rewrites the verification state in one statement, so
// concurrent callers only ever observe a fully committed code + expiry pair.
func (r *AccountRepo) UpdateVerification(ctx context.Context, phone string, verified bool, otp *string, expiresAt *time.Time) (*domain.Account, error) {
	q := `
UPDATE accounts
SET verified=$2, otp=$3, otp_expires_at=$4, otp_attempts=0
WHERE phone=$1
RETURNING ` + accountColumns
	row := r.db.QueryRow(ctx, q, phone, verified, otp, expiresAt)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) IncrementOTPAttempts(ctx context.Context, phone string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`UPDATE accounts SET otp_attempts = otp_attempts + 1 WHERE phone=$1 RETURNING otp_attempts`,
		phone,
	).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return n, nil
}
