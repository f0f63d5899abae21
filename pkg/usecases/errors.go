package usecases

import "errors"

// error kinds surfaced to the handler boundary; controllers map these to
// specific statuses instead of a generic failure
var (
	ErrMissingFields = errors.New("missing fields")
	ErrNonceInvalid  = errors.New("nonce invalid")
	ErrBadSignature  = errors.New("bad signature")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
)
