package entities

import "errors"

// Domain errors
var (
	ErrRunNotFound = errors.New("pulse run not found")
)
