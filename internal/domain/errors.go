package domain

import "errors"

var (
	ErrInvalidLevel      = errors.New("invalid satisfaction level")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrDuplicateSubmit   = errors.New("duplicate submission")
)
