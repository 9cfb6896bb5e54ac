//go:build unit || e2e

package builder

import (
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	reqdto "ekicare/internal/handler/dto/request"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"

	"github.com/google/uuid"
)

var DefaultNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type AppointmentBuilder struct {
	Clock               *clock.MockClock
	ProfessionalID      uuid.UUID
	SubscriptionActive  bool
	RequireSubscription bool
	OwnerID             uuid.UUID
	OwnedAnimalIDs      []uuid.UUID
	AnimalIDs           []uuid.UUID
	MainSlot            time.Time
	AlternativeSlots    []time.Time
	DurationMinutes     int
	Comment             string
}

func NewAppointmentBuilder() *AppointmentBuilder {
	animal := uuid.New()
	return &AppointmentBuilder{
		Clock:               clock.NewMockClock(DefaultNow),
		ProfessionalID:      uuid.New(),
		SubscriptionActive:  true,
		RequireSubscription: true,
		OwnerID:             uuid.New(),
		OwnedAnimalIDs:      []uuid.UUID{animal},
		AnimalIDs:           []uuid.UUID{animal},
		MainSlot:            time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		AlternativeSlots:    []time.Time{time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)},
		DurationMinutes:     60,
		Comment:             "Annual vaccination",
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) WithComment(c string) *AppointmentBuilder {
	b.Comment = c
	return b
}

func (b *AppointmentBuilder) WithMainSlot(t time.Time) *AppointmentBuilder {
	b.MainSlot = t
	return b
}

func (b *AppointmentBuilder) WithAlternativeSlots(ts ...time.Time) *AppointmentBuilder {
	b.AlternativeSlots = ts
	return b
}

func (b *AppointmentBuilder) Services() *appointment.Services {
	return &appointment.Services{
		Clock:  b.Clock,
		Policy: appointment.VerificationPolicy{RequireSubscriptionActive: b.RequireSubscription},
	}
}

func (b *AppointmentBuilder) ProfessionalSpec() appointment.ProfessionalSpec {
	return appointment.ProfessionalSpec{ID: b.ProfessionalID, SubscriptionActive: b.SubscriptionActive}
}

func (b *AppointmentBuilder) OwnerSpec() appointment.OwnerSpec {
	return appointment.OwnerSpec{ID: b.OwnerID, AnimalIDs: b.OwnedAnimalIDs}
}

func (b *AppointmentBuilder) Params() appointment.NewAppointmentParams {
	return appointment.NewAppointmentParams{
		AnimalIDs:        b.AnimalIDs,
		MainSlot:         b.MainSlot,
		AlternativeSlots: b.AlternativeSlots,
		DurationMinutes:  b.DurationMinutes,
		Comment:          b.Comment,
	}
}

func (b *AppointmentBuilder) ProfessionalActor() user.Actor {
	return user.NewActor(b.ProfessionalID, user.RolePro)
}

func (b *AppointmentBuilder) OwnerActor() user.Actor {
	return user.NewActor(b.OwnerID, user.RoleOwner)
}

// Build methods
func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	return appointment.NewAppointment(b.Services(), b.ProfessionalSpec(), b.OwnerSpec(), b.Params())
}

// MustBuildInStatus creates the appointment and drives it to status through
// legal transitions.
func (b *AppointmentBuilder) MustBuildInStatus(status appointment.Status) *appointment.Appointment {
	a, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	now := b.Clock.Now()
	pro := b.ProfessionalActor()
	switch status {
	case appointment.StatusPending:
	case appointment.StatusConfirmed:
		must(a.Accept(pro, now))
	case appointment.StatusRescheduled:
		next := b.MainSlot.Add(24 * time.Hour)
		must(a.Reschedule(pro, appointment.ScheduleChange{MainSlot: &next}, now))
	case appointment.StatusCompleted:
		must(a.Accept(pro, now))
		must(a.Complete(pro, nil, now))
	case appointment.StatusCancelled:
		must(a.Cancel(pro, "", now))
	}
	return a
}

func (b *AppointmentBuilder) BuildCreateInput() commands.CreateAppointmentInput {
	return commands.CreateAppointmentInput{
		Actor:            b.OwnerActor(),
		ProfessionalID:   b.ProfessionalID,
		AnimalIDs:        b.AnimalIDs,
		MainSlot:         b.MainSlot,
		AlternativeSlots: b.AlternativeSlots,
		DurationMinutes:  b.DurationMinutes,
		Comment:          b.Comment,
	}
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	alts := make([]reqdto.SlotRequest, len(b.AlternativeSlots))
	for i, t := range b.AlternativeSlots {
		alts[i] = slotRequest(t)
	}
	return reqdto.CreateAppointmentRequest{
		ProfessionalID:   b.ProfessionalID,
		AnimalIDs:        b.AnimalIDs,
		MainSlot:         slotRequest(b.MainSlot),
		AlternativeSlots: alts,
		DurationMinutes:  b.DurationMinutes,
		Comment:          b.Comment,
	}
}

func (b *AppointmentBuilder) BuildView(status appointment.Status) *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:               uuid.New(),
		ProfessionalID:   b.ProfessionalID,
		ProfessionalName: "Dr. Martin",
		OwnerID:          b.OwnerID,
		OwnerName:        "Claire Dubois",
		AnimalIDs:        b.AnimalIDs,
		MainSlot:         b.MainSlot,
		AlternativeSlots: b.AlternativeSlots,
		DurationMinutes:  b.DurationMinutes,
		Status:           status.String(),
		Comment:          b.Comment,
		CreatedAt:        DefaultNow,
		UpdatedAt:        DefaultNow,
	}
}

func slotRequest(t time.Time) reqdto.SlotRequest {
	d, hm := appointment.SplitInstant(t)
	return reqdto.SlotRequest{Date: d, Time: hm}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
