package queries

import "ekicare/internal/pkg/errs"

var (
	ErrAppointmentNotFound  = errs.Mark(errs.New("appointment not found"), errs.ErrNotFound)
	ErrAppointmentAccess    = errs.Mark(errs.New("appointment access denied"), errs.ErrForbidden)
	ErrProfessionalNotFound = errs.Mark(errs.New("professional not found"), errs.ErrNotFound)
	ErrProfessionalOnly     = errs.Mark(errs.New("only professionals may list clients"), errs.ErrForbidden)
	ErrInvalidCursor        = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)
	ErrInvalidSide          = errs.Mark(errs.New("role filter must match the caller"), errs.ErrForbidden)
	ErrInvalidAddress       = errs.Mark(errs.New("both addresses are required"), errs.ErrValidation)
)
