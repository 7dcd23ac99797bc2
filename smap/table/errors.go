package table

import "errors"

var (
	ErrDuplicateKey       = errors.New("duplicate composite key")
	ErrUnknownOrientation = errors.New("unknown orientation")
	ErrUnknownPolicy      = errors.New("unknown duplicate policy")
)
