package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrRecordNotFound     = errors.New("record not found")
	ErrAlreadySubmitted   = errors.New("report already submitted for this period")
	ErrInvalidDate        = errors.New("invalid date")
	ErrXPNotApplied       = errors.New("progress saved but XP was not applied")
	ErrUnsupportedAudio   = errors.New("unsupported audio file")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidSignature   = errors.New("invalid or expired file signature")
)

var ErrInvalidInput = errors.New("invalid input")
