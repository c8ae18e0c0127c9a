package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors.
//
//   - ErrNotFound: record does not exist in the store (including malformed ids)
//   - ErrAlreadyUsed: a unique key (employee email, attendance employee+day) is taken
//   - ErrInvalidState: a stored document cannot be decoded into the domain model
//   - ErrUnavailable: the backing database did not answer
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
