package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal error")
	ErrJobNotFound         = errors.New("job not found")
	ErrTailorNotFound      = errors.New("tailor not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
	ErrResumeMissing       = errors.New("master resume not uploaded")
	ErrIntentNotFound      = errors.New("intent not set")
	ErrJobAlreadyProcessed = errors.New("job already processed")
	ErrTailorReviewed      = errors.New("tailor already reviewed")
	ErrUpstreamAI          = errors.New("ai provider failed")
	ErrImportFailed        = errors.New("job description import failed")
)
