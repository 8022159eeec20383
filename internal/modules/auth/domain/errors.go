package domain

import "errors"

var (
	ErrDuplicateContact     = errors.New("duplicate_contact")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidPassword      = errors.New("invalid_password")
	ErrUnverified           = errors.New("unverified")
	ErrInvalidOrExpiredCode = errors.New("invalid_or_expired_code")
	ErrResendThrottled      = errors.New("resend_throttled")
)
