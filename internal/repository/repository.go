// Package repository holds the postgres-backed stores. Every read and write is
// scoped to the owning user.
package repository

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrTailorNotFound      = errors.New("tailor not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrIntentNotFound      = errors.New("intent not found")
	ErrJobNotPending       = errors.New("job is not pending")
	ErrTailorAlreadyReview = errors.New("tailor already reviewed")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
