package request

import (
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	"ekicare/internal/usecase/commands"

	"github.com/google/uuid"
)

// SlotRequest names an instant either as a UTC date and time of day or as a
// single RFC 3339 string with an explicit offset. When both are sent, At wins.
type SlotRequest struct {
	Date string `json:"date,omitempty" binding:"omitempty,ymd"`
	Time string `json:"time,omitempty" binding:"omitempty,hhmm"`
	At   string `json:"at,omitempty" binding:"omitempty,instant"`
}

func (s SlotRequest) Instant() (time.Time, error) {
	if s.At != "" {
		return appointment.ParseInstant(s.At)
	}
	return appointment.ToCanonicalInstant(s.Date, s.Time)
}

func slotInstants(slots []SlotRequest) ([]time.Time, error) {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		t, err := s.Instant()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type CreateAppointmentRequest struct {
	ProfessionalID   uuid.UUID     `json:"professionalId" binding:"required"`
	AnimalIDs        []uuid.UUID   `json:"animalIds" binding:"required,min=1,dive,required"`
	MainSlot         SlotRequest   `json:"mainSlot"`
	AlternativeSlots []SlotRequest `json:"alternativeSlots" binding:"omitempty,max=10,dive"`
	DurationMinutes  int           `json:"durationMinutes" binding:"omitempty,min=1,max=1440"`
	Comment          string        `json:"comment" binding:"required,max=2000"`
}

func (r *CreateAppointmentRequest) ToInput(actor user.Actor, idempotencyKey *uuid.UUID) (commands.CreateAppointmentInput, error) {
	main, err := r.MainSlot.Instant()
	if err != nil {
		return commands.CreateAppointmentInput{}, err
	}
	alts, err := slotInstants(r.AlternativeSlots)
	if err != nil {
		return commands.CreateAppointmentInput{}, err
	}
	return commands.CreateAppointmentInput{
		Actor:            actor,
		ProfessionalID:   r.ProfessionalID,
		AnimalIDs:        r.AnimalIDs,
		MainSlot:         main,
		AlternativeSlots: alts,
		DurationMinutes:  r.DurationMinutes,
		Comment:          r.Comment,
		IdempotencyKey:   idempotencyKey,
	}, nil
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RescheduleAppointmentRequest: an absent field keeps its current value, an
// empty alternativeSlots array clears the alternatives.
type RescheduleAppointmentRequest struct {
	MainSlot         *SlotRequest   `json:"mainSlot" binding:"omitempty"`
	AlternativeSlots *[]SlotRequest `json:"alternativeSlots" binding:"omitempty,max=10,dive"`
}

func (r *RescheduleAppointmentRequest) ToInput(id uuid.UUID, actor user.Actor) (commands.RescheduleInput, error) {
	in := commands.RescheduleInput{AppointmentID: id, Actor: actor}
	if r.MainSlot != nil {
		main, err := r.MainSlot.Instant()
		if err != nil {
			return commands.RescheduleInput{}, err
		}
		in.MainSlot = &main
	}
	if r.AlternativeSlots != nil {
		alts, err := slotInstants(*r.AlternativeSlots)
		if err != nil {
			return commands.RescheduleInput{}, err
		}
		in.AlternativeSlots = &alts
	}
	return in, nil
}

type CompleteAppointmentRequest struct {
	Report *string `json:"report" binding:"omitempty,max=5000"`
}

type AttachReportRequest struct {
	Report string `json:"report" binding:"required,max=5000"`
}
