package entity

import "errors"

// Domain errors shared across usecases and adapters.
var (
	ErrWordNotFound      = errors.New("word not found")
	ErrDuplicateWord     = errors.New("word already exists")
	ErrInvalidWordID     = errors.New("invalid word ID")
	ErrInvalidWordText   = errors.New("word text required")
	ErrInvalidCategory   = errors.New("word category required")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidLanguage   = errors.New("invalid target language")
	ErrInvalidAnswer     = errors.New("answer text required")
	ErrInvalidPrefKey    = errors.New("preference key required")
	ErrOracleUnavailable = errors.New("translation oracle unavailable")
)
