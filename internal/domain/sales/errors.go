package sales

import "errors"

var (
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrStoreNotInClaims = errors.New("store id missing from access token")
	ErrUnknownReport    = errors.New("unknown report")
)
