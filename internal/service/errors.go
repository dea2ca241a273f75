package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("permission denied")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotFound           = errors.New("record not found")
	ErrNoScores           = errors.New("no scores for the requested year")
	ErrInvalidBucket      = errors.New("month must be 1-12 and year 1900-9999")
)

func validBucket(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 1900 && year <= 9999
}
