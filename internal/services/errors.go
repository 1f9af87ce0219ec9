package services

import "errors"

// ErrEmptyContent is returned when a posted message is empty after trimming.
var ErrEmptyContent = errors.New("message content is required")
