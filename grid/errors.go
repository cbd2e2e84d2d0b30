package grid

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfRange           = errors.New("cell out of range")
	ErrInvalidPlayer        = errors.New("invalid player")
)
