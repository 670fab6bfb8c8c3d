package contract

import "errors"

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrRateLimited       = errors.New("model call rate limited")
	ErrMalformedCriteria = errors.New("lead criteria is malformed")
	ErrValidation        = errors.New("validation failed")
)
