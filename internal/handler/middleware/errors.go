package middleware

import "ekicare/internal/pkg/errs"

var (
	errMissingToken     = errs.New("missing bearer token")
	errInsufficientRole = errs.New("role not allowed")
	errInternalToken    = errs.New("invalid internal token")
	errRateLimited      = errs.New("rate limit exceeded")
)
