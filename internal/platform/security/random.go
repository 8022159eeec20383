package security

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// OTPCode returns a six-digit code in [100000, 999999].
func OTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
