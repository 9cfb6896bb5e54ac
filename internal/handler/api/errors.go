package api

import "ekicare/internal/pkg/errs"

var (
	errUnauthenticated = errs.New("no authenticated actor")
	errInvalidLimit    = errs.New("limit must be a positive integer")
	errInvalidRole     = errs.New("role must be professional or owner")
	errMissingAddress  = errs.New("from and to are required")
)
