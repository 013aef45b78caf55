package logger

import "errors"

// ErrInvalidLevel is returned when an invalid logging level is provided.
var ErrInvalidLevel = errors.New("invalid logging level")
