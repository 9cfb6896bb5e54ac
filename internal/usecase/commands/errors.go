package commands

import "ekicare/internal/pkg/errs"

var (
	ErrAppointmentNotFound  = errs.Mark(errs.New("appointment not found"), errs.ErrNotFound)
	ErrProfessionalNotFound = errs.Mark(errs.New("professional not found"), errs.ErrNotFound)
	ErrOwnerNotFound        = errs.Mark(errs.New("owner not found"), errs.ErrNotFound)
	ErrOwnerOnly            = errs.Mark(errs.New("only owners may request appointments"), errs.ErrForbidden)
	ErrPartyNotFound        = errs.Mark(errs.New("professional or owner does not exist"), errs.ErrNotFound)

	ErrIdempotencyKeyReused  = errs.Mark(errs.New("idempotency key reused with a different request"), errs.ErrConflict)
	ErrIdempotencyInProgress = errs.Mark(errs.New("idempotency in progress"), errs.ErrConflict)
	ErrIdempotencyCorrupt    = errs.New("completed request missing result appointment id")
)
