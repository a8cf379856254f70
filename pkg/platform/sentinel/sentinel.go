package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and services translate them into domain errors:
//   - ErrNotFound: the member, token class or transfer request does not exist
//   - ErrAlreadyUsed: a unique key (principal registration) is already taken
//   - ErrInvalidState: a row changed state underneath a conditional update
//   - ErrUnavailable: the backing store or cache cannot be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
