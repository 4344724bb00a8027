package console

import "errors"

var (
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort = errors.New("new password must be at least 4 characters")
)

const minPasswordLen = 4

// ValidatePasswordChange checks the client-detectable password rules before
// any network call, sparing the round trip for violations the console can
// see itself. Server-side rules still apply after it passes.
func ValidatePasswordChange(current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(newPassword)) < minPasswordLen {
		return ErrPasswordTooShort
	}
	// the current password is verified server-side only
	return nil
}
