package appointment

import (
	"time"

	"ekicare/internal/domain/user"
	"ekicare/internal/pkg/errs"
	"ekicare/internal/pkg/patch"

	"github.com/google/uuid"
)

type Appointment struct {
	id               uuid.UUID
	professionalID   uuid.UUID
	ownerID          uuid.UUID
	animalIDs        []uuid.UUID
	mainSlot         Slot
	alternativeSlots []Slot
	durationMinutes  int
	status           Status
	comment          Comment
	report           *Report
	proposedBy       user.Role
	cancelReason     *string
	createdAt        time.Time
	updatedAt        time.Time
}

type NewAppointmentParams struct {
	AnimalIDs        []uuid.UUID
	MainSlot         time.Time
	AlternativeSlots []time.Time
	DurationMinutes  int
	Comment          string
}

func NewAppointment(
	services *Services,
	pro ProfessionalSpec,
	owner OwnerSpec,
	p NewAppointmentParams,
) (*Appointment, error) {
	now := services.Clock.Now()

	if services.Policy.RequireSubscriptionActive && !pro.SubscriptionActive {
		return nil, ErrSubscriptionInactive
	}

	comment, err := NewComment(p.Comment)
	if err != nil {
		return nil, err
	}
	animals, err := validateAnimals(p.AnimalIDs, owner.AnimalIDs)
	if err != nil {
		return nil, err
	}
	duration, err := NormalizeDuration(p.DurationMinutes)
	if err != nil {
		return nil, err
	}
	main, alts, err := buildSlots(p.MainSlot, p.AlternativeSlots, now, true)
	if err != nil {
		return nil, err
	}

	return &Appointment{
		id:               uuid.New(),
		professionalID:   pro.ID,
		ownerID:          owner.ID,
		animalIDs:        animals,
		mainSlot:         main,
		alternativeSlots: alts,
		durationMinutes:  duration,
		status:           StatusPending,
		comment:          comment,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructAppointment rebuilds an appointment from storage without validation.
func ReconstructAppointment(
	id, professionalID, ownerID uuid.UUID,
	animalIDs []uuid.UUID,
	mainSlot Slot,
	alternativeSlots []Slot,
	durationMinutes int,
	status Status,
	comment Comment,
	report *Report,
	proposedBy user.Role,
	cancelReason *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:               id,
		professionalID:   professionalID,
		ownerID:          ownerID,
		animalIDs:        animalIDs,
		mainSlot:         mainSlot,
		alternativeSlots: alternativeSlots,
		durationMinutes:  durationMinutes,
		status:           status,
		comment:          comment,
		report:           report,
		proposedBy:       proposedBy,
		cancelReason:     cancelReason,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func buildSlots(mainAt time.Time, altAt []time.Time, now time.Time, checkAlts bool) (Slot, []Slot, error) {
	main, err := NewSlot(mainAt)
	if err != nil {
		return Slot{}, nil, err
	}
	if main.IsPast(now) {
		return Slot{}, nil, ErrSlotInPast
	}
	alts, err := slotsFromTimes(altAt)
	if err != nil {
		return Slot{}, nil, err
	}
	if checkAlts {
		for _, s := range alts {
			if s.IsPast(now) {
				return Slot{}, nil, ErrSlotInPast
			}
		}
	}
	if err := validateDistinctSlots(main, alts); err != nil {
		return Slot{}, nil, err
	}
	return main, alts, nil
}

// participantRole resolves which side of the appointment the actor is on.
func (a *Appointment) participantRole(actor user.Actor) (user.Role, error) {
	switch {
	case actor.IsPro() && actor.ID == a.professionalID:
		return user.RolePro, nil
	case actor.IsOwner() && actor.ID == a.ownerID:
		return user.RoleOwner, nil
	default:
		return "", ErrNotParticipant
	}
}

func (a *Appointment) ensureTransition(next Status) error {
	if !a.status.CanTransitionTo(next) {
		return errs.Mark(
			errs.Newf("cannot move appointment %s from %s to %s", a.id, a.status, next),
			errs.ErrInvalidTransition,
		)
	}
	return nil
}

func (a *Appointment) touch(now time.Time) {
	if now.After(a.updatedAt) {
		a.updatedAt = now
	}
}

// Accept confirms a pending request (professional only) or a rescheduled
// proposal (only the side that did not propose it).
func (a *Appointment) Accept(actor user.Actor, now time.Time) error {
	role, err := a.participantRole(actor)
	if err != nil {
		return err
	}
	if err := a.ensureTransition(StatusConfirmed); err != nil {
		return err
	}
	switch a.status {
	case StatusPending:
		if role != user.RolePro {
			return ErrWrongActor
		}
	case StatusRescheduled:
		if role != a.counterpartOfProposal() {
			return ErrWrongActor
		}
	}
	a.status = StatusConfirmed
	a.touch(now)
	return nil
}

// Rows written before proposedBy existed default to the professional as acceptor.
func (a *Appointment) counterpartOfProposal() user.Role {
	if a.proposedBy == user.RolePro {
		return user.RoleOwner
	}
	return user.RolePro
}

func (a *Appointment) Cancel(actor user.Actor, reason string, now time.Time) error {
	if _, err := a.participantRole(actor); err != nil {
		return err
	}
	if err := a.ensureTransition(StatusCancelled); err != nil {
		return err
	}
	r, err := normalizeCancelReason(reason)
	if err != nil {
		return err
	}
	a.status = StatusCancelled
	a.cancelReason = r
	a.touch(now)
	return nil
}

// ScheduleChange holds the optional parts of a new time proposal. A nil field
// keeps the current value.
type ScheduleChange struct {
	MainSlot         *time.Time
	AlternativeSlots *[]time.Time
}

func (a *Appointment) Reschedule(actor user.Actor, change ScheduleChange, now time.Time) error {
	role, err := a.participantRole(actor)
	if err != nil {
		return err
	}
	if err := a.ensureTransition(StatusRescheduled); err != nil {
		return err
	}
	if change.MainSlot == nil && change.AlternativeSlots == nil {
		return ErrNothingToReschedule
	}

	mainAt := patch.Coalesce(change.MainSlot, a.mainSlot.Time())
	altAt := patch.CoalesceSlice(change.AlternativeSlots, SlotTimes(a.alternativeSlots))
	main, alts, err := buildSlots(mainAt, altAt, now, change.AlternativeSlots != nil)
	if err != nil {
		return err
	}
	if main.Equal(a.mainSlot) && sameSlots(alts, a.alternativeSlots) {
		return ErrNothingToReschedule
	}

	a.mainSlot = main
	a.alternativeSlots = alts
	a.status = StatusRescheduled
	a.proposedBy = role
	a.touch(now)
	return nil
}

// Complete closes a confirmed appointment by hand, optionally with a report.
func (a *Appointment) Complete(actor user.Actor, report *string, now time.Time) error {
	role, err := a.participantRole(actor)
	if err != nil {
		return err
	}
	if err := a.ensureTransition(StatusCompleted); err != nil {
		return err
	}
	if role != user.RolePro {
		return ErrWrongActor
	}
	if report != nil {
		r, err := NewReport(*report)
		if err != nil {
			return err
		}
		a.report = &r
	}
	a.status = StatusCompleted
	a.touch(now)
	return nil
}

func (a *Appointment) AttachReport(actor user.Actor, report string, now time.Time) error {
	role, err := a.participantRole(actor)
	if err != nil {
		return err
	}
	if a.status != StatusCompleted {
		return errs.Mark(
			errs.Newf("report requires a completed appointment, got %s", a.status),
			errs.ErrInvalidTransition,
		)
	}
	if role != user.RolePro {
		return ErrWrongActor
	}
	r, err := NewReport(report)
	if err != nil {
		return err
	}
	a.report = &r
	a.touch(now)
	return nil
}

func sameSlots(a, b []Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (a *Appointment) SlotRecord() SlotRecord {
	return SlotRecord{
		Status:           a.status,
		MainSlot:         a.mainSlot.Time(),
		AlternativeSlots: SlotTimes(a.alternativeSlots),
	}
}

func (a *Appointment) ID() uuid.UUID             { return a.id }
func (a *Appointment) ProfessionalID() uuid.UUID { return a.professionalID }
func (a *Appointment) OwnerID() uuid.UUID        { return a.ownerID }
func (a *Appointment) AnimalIDs() []uuid.UUID    { return append([]uuid.UUID(nil), a.animalIDs...) }
func (a *Appointment) MainSlot() Slot            { return a.mainSlot }
func (a *Appointment) AlternativeSlots() []Slot  { return append([]Slot(nil), a.alternativeSlots...) }
func (a *Appointment) DurationMinutes() int      { return a.durationMinutes }
func (a *Appointment) Status() Status            { return a.status }
func (a *Appointment) Comment() Comment          { return a.comment }
func (a *Appointment) Report() *Report           { return a.report }
func (a *Appointment) ProposedBy() user.Role     { return a.proposedBy }
func (a *Appointment) CancelReason() *string     { return a.cancelReason }
func (a *Appointment) CreatedAt() time.Time      { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time      { return a.updatedAt }
