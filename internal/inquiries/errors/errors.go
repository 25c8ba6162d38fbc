package errors

import "errors"

var ErrNotFound = errors.New("inquiry not found")
