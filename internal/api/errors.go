package api

import "errors"

var (
	ErrBadRequest  = errors.New("pricing request rejected")
	ErrNonFinite   = errors.New("pricing produced a non-finite price")
	ErrRateLimited = errors.New("rate limited by pricing service")
)
