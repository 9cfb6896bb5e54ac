//go:build unit

package appointment_test

import (
	"strings"
	"testing"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	"ekicare/internal/pkg/errs"
	"ekicare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.AppointmentBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewAppointmentBuilder()
			if tc.mutate != nil {
				b.With(tc.mutate)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs), "got %v", err)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewAppointment(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, appointment.StatusPending, actual.Status())
		assert.Equal(t, b.ProfessionalID, actual.ProfessionalID())
		assert.Equal(t, b.OwnerID, actual.OwnerID())
		assert.Equal(t, b.MainSlot, actual.MainSlot().Time())
		assert.Len(t, actual.AlternativeSlots(), 1)
		assert.Equal(t, 60, actual.DurationMinutes())
		assert.Equal(t, builder.DefaultNow, actual.CreatedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.Empty(t, actual.ProposedBy())
		assert.Nil(t, actual.Report())
	})

	t.Run("comment validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "empty", mutate: func(b *builder.AppointmentBuilder) { b.WithComment("") }, errIs: appointment.ErrEmptyComment},
			{name: "whitespace", mutate: func(b *builder.AppointmentBuilder) { b.WithComment("  \t ") }, errIs: appointment.ErrEmptyComment},
			{
				name:   "too long",
				mutate: func(b *builder.AppointmentBuilder) { b.WithComment(strings.Repeat("a", appointment.MaxCommentLength+1)) },
				errIs:  appointment.ErrCommentTooLong,
			},
		})
	})

	t.Run("animal validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "none", mutate: func(b *builder.AppointmentBuilder) { b.AnimalIDs = nil }, errIs: appointment.ErrNoAnimals},
			{
				name:   "duplicate",
				mutate: func(b *builder.AppointmentBuilder) { b.AnimalIDs = append(b.AnimalIDs, b.AnimalIDs[0]) },
				errIs:  appointment.ErrDuplicateAnimal,
			},
			{
				name:   "not owned",
				mutate: func(b *builder.AppointmentBuilder) { b.AnimalIDs = []uuid.UUID{uuid.New()} },
				errIs:  appointment.ErrAnimalNotOwned,
			},
			{
				name: "several owned",
				mutate: func(b *builder.AppointmentBuilder) {
					extra := uuid.New()
					b.OwnedAnimalIDs = append(b.OwnedAnimalIDs, extra)
					b.AnimalIDs = append(b.AnimalIDs, extra)
				},
			},
		})
	})

	t.Run("slot validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "main in the past",
				mutate: func(b *builder.AppointmentBuilder) { b.WithMainSlot(builder.DefaultNow.Add(-time.Minute)) },
				errIs:  appointment.ErrSlotInPast,
			},
			{
				name:   "main exactly now",
				mutate: func(b *builder.AppointmentBuilder) { b.WithMainSlot(builder.DefaultNow) },
			},
			{
				name:   "alternative in the past",
				mutate: func(b *builder.AppointmentBuilder) { b.WithAlternativeSlots(builder.DefaultNow.Add(-time.Hour)) },
				errIs:  appointment.ErrSlotInPast,
			},
			{
				name:   "alternative equals main",
				mutate: func(b *builder.AppointmentBuilder) { b.WithAlternativeSlots(b.MainSlot) },
				errIs:  appointment.ErrDuplicateSlot,
			},
			{
				name: "alternatives repeat",
				mutate: func(b *builder.AppointmentBuilder) {
					alt := b.MainSlot.Add(time.Hour)
					b.WithAlternativeSlots(alt, alt)
				},
				errIs: appointment.ErrDuplicateSlot,
			},
			{
				name:   "no alternatives",
				mutate: func(b *builder.AppointmentBuilder) { b.WithAlternativeSlots() },
			},
			{
				name:   "zero main",
				mutate: func(b *builder.AppointmentBuilder) { b.WithMainSlot(time.Time{}) },
				errIs:  errs.ErrInvalidTemporalInput,
			},
		})
	})

	t.Run("past slot is a validation error", func(t *testing.T) {
		_, err := builder.NewAppointmentBuilder().WithMainSlot(builder.DefaultNow.Add(-time.Hour)).BuildDomain()
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.False(t, errs.Is(err, errs.ErrInvalidTemporalInput))
	})

	t.Run("duration", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "negative", mutate: func(b *builder.AppointmentBuilder) { b.DurationMinutes = -5 }, errIs: appointment.ErrInvalidDuration},
			{name: "explicit", mutate: func(b *builder.AppointmentBuilder) { b.DurationMinutes = 90 }},
		})

		b := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) { b.DurationMinutes = 0 })
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, appointment.DefaultDuration, actual.DurationMinutes())
	})

	t.Run("subscription policy", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "inactive subscription rejected",
				mutate: func(b *builder.AppointmentBuilder) { b.SubscriptionActive = false },
				errIs:  appointment.ErrSubscriptionInactive,
			},
			{
				name: "inactive subscription allowed when policy relaxed",
				mutate: func(b *builder.AppointmentBuilder) {
					b.SubscriptionActive = false
					b.RequireSubscription = false
				},
			},
		})
	})

	t.Run("errors carry their kind", func(t *testing.T) {
		_, err := builder.NewAppointmentBuilder().WithComment("").BuildDomain()
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Equal(t, errs.ErrValidation, errs.Kind(err))
	})
}

func TestAccept(t *testing.T) {
	t.Run("professional confirms a pending request", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)
		later := builder.DefaultNow.Add(time.Hour)

		require.NoError(t, a.Accept(b.ProfessionalActor(), later))
		assert.Equal(t, appointment.StatusConfirmed, a.Status())
		assert.Equal(t, later, a.UpdatedAt())
	})

	t.Run("owner cannot confirm a pending request", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)

		err := a.Accept(b.OwnerActor(), builder.DefaultNow)
		assert.ErrorIs(t, err, appointment.ErrWrongActor)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
		assert.Equal(t, appointment.StatusPending, a.Status())
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)

		err := a.Accept(user.NewActor(uuid.New(), user.RolePro), builder.DefaultNow)
		assert.ErrorIs(t, err, appointment.ErrNotParticipant)
	})

	t.Run("a proposal is accepted by the other side", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusRescheduled)
		require.Equal(t, user.RolePro, a.ProposedBy())

		assert.ErrorIs(t, a.Accept(b.ProfessionalActor(), builder.DefaultNow), appointment.ErrWrongActor)
		require.NoError(t, a.Accept(b.OwnerActor(), builder.DefaultNow))
		assert.Equal(t, appointment.StatusConfirmed, a.Status())
	})

	t.Run("owner proposal is accepted by the professional", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)
		next := b.MainSlot.Add(2 * time.Hour)
		require.NoError(t, a.Reschedule(b.OwnerActor(), appointment.ScheduleChange{MainSlot: &next}, builder.DefaultNow))

		assert.ErrorIs(t, a.Accept(b.OwnerActor(), builder.DefaultNow), appointment.ErrWrongActor)
		require.NoError(t, a.Accept(b.ProfessionalActor(), builder.DefaultNow))
	})

	t.Run("confirmed cannot be accepted again", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusConfirmed)

		err := a.Accept(b.ProfessionalActor(), builder.DefaultNow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})
}

func TestCancel(t *testing.T) {
	for _, from := range appointment.LiveStatuses() {
		t.Run("from "+from.String(), func(t *testing.T) {
			b := builder.NewAppointmentBuilder()
			a := b.MustBuildInStatus(from)

			require.NoError(t, a.Cancel(b.OwnerActor(), "  horse is sick  ", builder.DefaultNow))
			assert.Equal(t, appointment.StatusCancelled, a.Status())
			require.NotNil(t, a.CancelReason())
			assert.Equal(t, "horse is sick", *a.CancelReason())
		})
	}

	t.Run("reason too long", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)
		err := a.Cancel(b.ProfessionalActor(), strings.Repeat("x", appointment.MaxCancelReasonLength+1), builder.DefaultNow)
		assert.ErrorIs(t, err, appointment.ErrCancelReasonTooLong)
		assert.Equal(t, appointment.StatusPending, a.Status())
	})
}

func TestReschedule(t *testing.T) {
	t.Run("new main slot keeps alternatives", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusConfirmed)
		next := b.MainSlot.Add(48 * time.Hour)

		require.NoError(t, a.Reschedule(b.OwnerActor(), appointment.ScheduleChange{MainSlot: &next}, builder.DefaultNow))
		assert.Equal(t, appointment.StatusRescheduled, a.Status())
		assert.Equal(t, next, a.MainSlot().Time())
		assert.Len(t, a.AlternativeSlots(), 1)
		assert.Equal(t, user.RoleOwner, a.ProposedBy())
	})

	t.Run("clearing alternatives counts as a change", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)
		empty := []time.Time{}

		require.NoError(t, a.Reschedule(b.ProfessionalActor(), appointment.ScheduleChange{AlternativeSlots: &empty}, builder.DefaultNow))
		assert.Empty(t, a.AlternativeSlots())
	})

	cases := []struct {
		name   string
		change func(b *builder.AppointmentBuilder) appointment.ScheduleChange
		errIs  error
	}{
		{
			name:   "nothing supplied",
			change: func(*builder.AppointmentBuilder) appointment.ScheduleChange { return appointment.ScheduleChange{} },
			errIs:  appointment.ErrNothingToReschedule,
		},
		{
			name: "same values",
			change: func(b *builder.AppointmentBuilder) appointment.ScheduleChange {
				main := b.MainSlot
				alts := append([]time.Time(nil), b.AlternativeSlots...)
				return appointment.ScheduleChange{MainSlot: &main, AlternativeSlots: &alts}
			},
			errIs: appointment.ErrNothingToReschedule,
		},
		{
			name: "main in the past",
			change: func(*builder.AppointmentBuilder) appointment.ScheduleChange {
				past := builder.DefaultNow.Add(-time.Hour)
				return appointment.ScheduleChange{MainSlot: &past}
			},
			errIs: appointment.ErrSlotInPast,
		},
		{
			name: "new main collides with kept alternative",
			change: func(b *builder.AppointmentBuilder) appointment.ScheduleChange {
				alt := b.AlternativeSlots[0]
				return appointment.ScheduleChange{MainSlot: &alt}
			},
			errIs: appointment.ErrDuplicateSlot,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewAppointmentBuilder()
			a := b.MustBuildInStatus(appointment.StatusPending)
			err := a.Reschedule(b.OwnerActor(), c.change(b), builder.DefaultNow)
			assert.ErrorIs(t, err, c.errIs)
			assert.Equal(t, appointment.StatusPending, a.Status())
		})
	}

	t.Run("rescheduled cannot be rescheduled again", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusRescheduled)
		next := b.MainSlot.Add(72 * time.Hour)
		err := a.Reschedule(b.OwnerActor(), appointment.ScheduleChange{MainSlot: &next}, builder.DefaultNow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})
}

func TestCompleteAndReport(t *testing.T) {
	t.Run("professional completes with report", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusConfirmed)
		report := "Teeth floated, all fine"

		require.NoError(t, a.Complete(b.ProfessionalActor(), &report, builder.DefaultNow))
		assert.Equal(t, appointment.StatusCompleted, a.Status())
		require.NotNil(t, a.Report())
		assert.Equal(t, report, a.Report().String())
	})

	t.Run("owner cannot complete", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusConfirmed)
		assert.ErrorIs(t, a.Complete(b.OwnerActor(), nil, builder.DefaultNow), appointment.ErrWrongActor)
	})

	t.Run("pending cannot be completed by hand", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusPending)
		err := a.Complete(b.ProfessionalActor(), nil, builder.DefaultNow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("report on completed appointment", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusCompleted)

		require.NoError(t, a.AttachReport(b.ProfessionalActor(), "follow-up in 6 months", builder.DefaultNow))
		assert.Equal(t, "follow-up in 6 months", a.Report().String())

		assert.ErrorIs(t, a.AttachReport(b.ProfessionalActor(), strings.Repeat("r", appointment.MaxReportLength+1), builder.DefaultNow), appointment.ErrReportTooLong)
		assert.ErrorIs(t, a.AttachReport(b.ProfessionalActor(), " ", builder.DefaultNow), appointment.ErrEmptyReport)
		assert.ErrorIs(t, a.AttachReport(b.OwnerActor(), "mine", builder.DefaultNow), appointment.ErrWrongActor)
	})

	t.Run("report requires completion", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		a := b.MustBuildInStatus(appointment.StatusConfirmed)
		err := a.AttachReport(b.ProfessionalActor(), "too early", builder.DefaultNow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("report at the limit", func(t *testing.T) {
		_, err := appointment.NewReport(strings.Repeat("é", appointment.MaxReportLength))
		assert.NoError(t, err)
	})
}

// Once terminal, every transition fails with InvalidTransition and leaves the
// appointment untouched.
func TestTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []appointment.Status{appointment.StatusCompleted, appointment.StatusCancelled} {
		t.Run(terminal.String(), func(t *testing.T) {
			b := builder.NewAppointmentBuilder()
			a := b.MustBuildInStatus(terminal)
			before := a.UpdatedAt()
			later := builder.DefaultNow.Add(time.Hour)
			next := b.MainSlot.Add(24 * time.Hour)

			for _, actor := range []user.Actor{b.ProfessionalActor(), b.OwnerActor()} {
				for name, op := range map[string]func() error{
					"accept":     func() error { return a.Accept(actor, later) },
					"cancel":     func() error { return a.Cancel(actor, "", later) },
					"reschedule": func() error { return a.Reschedule(actor, appointment.ScheduleChange{MainSlot: &next}, later) },
					"complete":   func() error { return a.Complete(actor, nil, later) },
				} {
					err := op()
					assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "%s by %s", name, actor.Role)
				}
			}
			assert.Equal(t, terminal, a.Status())
			assert.Equal(t, before, a.UpdatedAt())
		})
	}
}

func TestUpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	b := builder.NewAppointmentBuilder()
	a := b.MustBuildInStatus(appointment.StatusPending)

	require.NoError(t, a.Accept(b.ProfessionalActor(), builder.DefaultNow.Add(-time.Hour)))
	assert.False(t, a.UpdatedAt().Before(a.CreatedAt()))
}
