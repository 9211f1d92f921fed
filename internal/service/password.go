package service

import "fmt"

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: length must be within %d..%d bytes", ErrInvalidPassword, minPasswordLength, maxPasswordLength)
	}
	return nil
}
