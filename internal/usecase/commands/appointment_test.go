//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	"ekicare/internal/pkg/errs"
	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"
	"ekicare/internal/usecase/shared"
	"ekicare/tests/common/builder"
	"ekicare/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AppointmentCommandsTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	b     *builder.AppointmentBuilder
	cmds  commands.AppointmentCommands
	sweep commands.SweepCommands
}

func (s *AppointmentCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.b = builder.NewAppointmentBuilder()

	s.store.AddProfessional(shared.ProfessionalSnapshot{ID: s.b.ProfessionalID, DisplayName: "Dr. Martin", SubscriptionActive: true})
	s.store.AddOwner(shared.OwnerSnapshot{ID: s.b.OwnerID, DisplayName: "Claire Dubois", AnimalIDs: s.b.OwnedAnimalIDs})

	policy := appointment.VerificationPolicy{RequireSubscriptionActive: true}
	s.cmds = commands.NewAppointmentUseCase(s.store, queries.NewAppointmentQueries(s.store), s.b.Clock, policy)
	s.sweep = commands.NewSweepUseCase(s.store, s.b.Clock, commands.SweepPolicy{MaxRetries: 2})
}

func TestAppointmentCommandsSuite(t *testing.T) {
	suite.Run(t, new(AppointmentCommandsTestSuite))
}

func (s *AppointmentCommandsTestSuite) create() *queries.AppointmentView {
	res, err := s.cmds.Create(s.ctx, s.b.BuildCreateInput())
	s.Require().NoError(err)
	return res.Appointment
}

func (s *AppointmentCommandsTestSuite) topics() []string {
	var out []string
	for _, j := range s.store.Jobs() {
		out = append(out, j.Topic)
	}
	return out
}

// ================================================================================
// Create
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestCreate() {
	s.Run("success: stores a pending appointment and queues a notification", func() {
		s.SetupTest()
		view := s.create()

		s.Equal("pending", view.Status)
		s.Equal("Dr. Martin", view.ProfessionalName)
		s.True(view.MainSlot.Equal(s.b.MainSlot))
		s.Equal(1, s.store.AppointmentCount())

		jobs := s.store.Jobs()
		s.Require().Len(jobs, 1)
		s.Equal("email", jobs[0].Kind)
		s.Equal(appointment.EventRequested.String(), jobs[0].Topic)

		var payload map[string]any
		s.Require().NoError(json.Unmarshal(jobs[0].Payload, &payload))
		s.Equal(view.ID.String(), payload["appointment_id"])
		s.Equal("OWNER", payload["actor"])
	})

	s.Run("error: failures leave nothing behind", func() {
		testCases := []struct {
			name   string
			mutate func(in *commands.CreateAppointmentInput)
			want   error
		}{
			{
				name:   "caller is a professional",
				mutate: func(in *commands.CreateAppointmentInput) { in.Actor = user.NewActor(in.Actor.ID, user.RolePro) },
				want:   commands.ErrOwnerOnly,
			},
			{
				name:   "unknown professional",
				mutate: func(in *commands.CreateAppointmentInput) { in.ProfessionalID = uuid.New() },
				want:   commands.ErrProfessionalNotFound,
			},
			{
				name:   "unknown owner",
				mutate: func(in *commands.CreateAppointmentInput) { in.Actor = user.NewActor(uuid.New(), user.RoleOwner) },
				want:   commands.ErrOwnerNotFound,
			},
			{
				name:   "main slot in the past",
				mutate: func(in *commands.CreateAppointmentInput) { in.MainSlot = builder.DefaultNow.Add(-time.Hour) },
				want:   appointment.ErrSlotInPast,
			},
			{
				name:   "animal of someone else",
				mutate: func(in *commands.CreateAppointmentInput) { in.AnimalIDs = []uuid.UUID{uuid.New()} },
				want:   appointment.ErrAnimalNotOwned,
			},
			{
				name:   "alternative equals main",
				mutate: func(in *commands.CreateAppointmentInput) { in.AlternativeSlots = []time.Time{in.MainSlot} },
				want:   appointment.ErrDuplicateSlot,
			},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.SetupTest()
				in := s.b.BuildCreateInput()
				tc.mutate(&in)

				_, err := s.cmds.Create(s.ctx, in)
				s.True(errs.Is(err, tc.want), "got %v", err)
				s.Equal(0, s.store.AppointmentCount())
				s.Empty(s.store.Jobs())
			})
		}
	})

	s.Run("error: inactive subscription", func() {
		s.SetupTest()
		s.store.AddProfessional(shared.ProfessionalSnapshot{ID: s.b.ProfessionalID, SubscriptionActive: false})

		_, err := s.cmds.Create(s.ctx, s.b.BuildCreateInput())
		s.True(errs.Is(err, appointment.ErrSubscriptionInactive))
	})

	s.Run("success: duplicate slot is accepted", func() {
		s.SetupTest()
		first := s.create()
		second := s.create()

		s.NotEqual(first.ID, second.ID)
		s.Equal(2, s.store.AppointmentCount())
	})
}

func (s *AppointmentCommandsTestSuite) TestCreateIdempotency() {
	s.Run("same key and payload replays the first result", func() {
		s.SetupTest()
		key := uuid.New()
		in := s.b.BuildCreateInput()
		in.IdempotencyKey = &key

		first, err := s.cmds.Create(s.ctx, in)
		s.Require().NoError(err)
		s.False(first.IsReplayed)

		second, err := s.cmds.Create(s.ctx, in)
		s.Require().NoError(err)
		s.True(second.IsReplayed)
		s.Equal(first.Appointment.ID, second.Appointment.ID)
		s.Equal(1, s.store.AppointmentCount())
		s.Len(s.store.Jobs(), 1)

		rec, ok := s.store.Idempotency(key, s.b.OwnerID)
		s.Require().True(ok)
		s.Equal(shared.IdempotencyStatusCompleted, rec.Status)
	})

	s.Run("same key with another payload conflicts", func() {
		s.SetupTest()
		key := uuid.New()
		in := s.b.BuildCreateInput()
		in.IdempotencyKey = &key
		_, err := s.cmds.Create(s.ctx, in)
		s.Require().NoError(err)

		in.Comment = "Something else"
		_, err = s.cmds.Create(s.ctx, in)
		s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))
		s.True(errs.Is(err, errs.ErrConflict))
	})

	s.Run("failed creation releases the key", func() {
		s.SetupTest()
		key := uuid.New()
		in := s.b.BuildCreateInput()
		in.IdempotencyKey = &key
		in.MainSlot = builder.DefaultNow.Add(-time.Hour)

		_, err := s.cmds.Create(s.ctx, in)
		s.Require().Error(err)
		_, ok := s.store.Idempotency(key, s.b.OwnerID)
		s.False(ok)

		in.MainSlot = s.b.MainSlot
		res, err := s.cmds.Create(s.ctx, in)
		s.Require().NoError(err)
		s.False(res.IsReplayed)
	})

	s.Run("another request still processing", func() {
		s.SetupTest()
		key := uuid.New()
		s.store.PutIdempotency(shared.IdempotencyRecord{
			Key:         key,
			UserID:      s.b.OwnerID,
			Status:      shared.IdempotencyStatusProcessing,
			RequestHash: "other",
			ExpiresAt:   builder.DefaultNow.Add(time.Hour),
		})
		in := s.b.BuildCreateInput()
		in.IdempotencyKey = &key

		_, err := s.cmds.Create(s.ctx, in)
		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})

	s.Run("expired processing claim is taken over", func() {
		s.SetupTest()
		key := uuid.New()
		s.store.PutIdempotency(shared.IdempotencyRecord{
			Key:         key,
			UserID:      s.b.OwnerID,
			Status:      shared.IdempotencyStatusProcessing,
			RequestHash: "other",
			ExpiresAt:   builder.DefaultNow.Add(-time.Minute),
		})
		in := s.b.BuildCreateInput()
		in.IdempotencyKey = &key

		res, err := s.cmds.Create(s.ctx, in)
		s.Require().NoError(err)
		s.Equal(1, s.store.AppointmentCount())

		rec, _ := s.store.Idempotency(key, s.b.OwnerID)
		s.Equal(shared.IdempotencyStatusCompleted, rec.Status)
		s.Equal(res.Appointment.ID, *rec.ResultAppointmentID)
	})
}

// ================================================================================
// Transitions
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestAccept() {
	s.Run("success: confirms and records the client relationship", func() {
		s.SetupTest()
		view := s.create()
		s.False(s.store.HasRelationship(s.b.ProfessionalID, s.b.OwnerID))

		got, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
		s.Require().NoError(err)
		s.Equal("confirmed", got.Status)
		s.True(s.store.HasRelationship(s.b.ProfessionalID, s.b.OwnerID))
		s.Equal([]string{"appointment_requested", "appointment_confirmed"}, s.topics())
	})

	s.Run("error: owner cannot accept their own request", func() {
		s.SetupTest()
		view := s.create()

		_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.OwnerActor()})
		s.True(errs.Is(err, appointment.ErrWrongActor))
		s.False(s.store.HasRelationship(s.b.ProfessionalID, s.b.OwnerID))
	})

	s.Run("error: accepting twice is an invalid transition", func() {
		s.SetupTest()
		view := s.create()
		in := commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()}
		_, err := s.cmds.Accept(s.ctx, in)
		s.Require().NoError(err)

		_, err = s.cmds.Accept(s.ctx, in)
		s.True(errs.Is(err, errs.ErrInvalidTransition))
		s.Equal(1, s.store.RelationshipCount())
	})

	s.Run("error: strangers are rejected", func() {
		s.SetupTest()
		view := s.create()

		_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: user.NewActor(uuid.New(), user.RolePro)})
		s.True(errs.Is(err, appointment.ErrNotParticipant))
	})

	s.Run("error: unknown appointment", func() {
		s.SetupTest()
		_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: uuid.New(), Actor: s.b.ProfessionalActor()})
		s.True(errs.Is(err, commands.ErrAppointmentNotFound))
	})
}

func (s *AppointmentCommandsTestSuite) TestRescheduleThenAccept() {
	s.SetupTest()
	view := s.create()

	next := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	got, err := s.cmds.Reschedule(s.ctx, commands.RescheduleInput{AppointmentID: view.ID, Actor: s.b.OwnerActor(), MainSlot: &next})
	s.Require().NoError(err)
	s.Equal("rescheduled", got.Status)
	s.Require().NotNil(got.ProposedBy)
	s.Equal(string(user.RoleOwner), *got.ProposedBy)
	s.True(got.MainSlot.Equal(next))
	s.Len(got.AlternativeSlots, 1, "alternatives are kept when not supplied")

	_, err = s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.OwnerActor()})
	s.True(errs.Is(err, appointment.ErrWrongActor), "proposer cannot accept")

	got, err = s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)
	s.Equal("confirmed", got.Status)
}

func (s *AppointmentCommandsTestSuite) TestCancel() {
	s.Run("success: reason is stored", func() {
		s.SetupTest()
		view := s.create()

		got, err := s.cmds.Cancel(s.ctx, commands.CancelInput{AppointmentID: view.ID, Actor: s.b.OwnerActor(), Reason: "  horse is sick "})
		s.Require().NoError(err)
		s.Equal("cancelled", got.Status)
		s.Require().NotNil(got.CancelReason)
		s.Equal("horse is sick", *got.CancelReason)
	})

	s.Run("error: terminal states do not move", func() {
		s.SetupTest()
		view := s.create()
		_, err := s.cmds.Cancel(s.ctx, commands.CancelInput{AppointmentID: view.ID, Actor: s.b.OwnerActor()})
		s.Require().NoError(err)

		_, err = s.cmds.Cancel(s.ctx, commands.CancelInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
		s.True(errs.Is(err, errs.ErrInvalidTransition))
		stored, _ := s.store.Appointment(view.ID)
		s.Equal(appointment.StatusCancelled, stored.Status())
	})
}

func (s *AppointmentCommandsTestSuite) TestCompleteAndReport() {
	s.SetupTest()
	view := s.create()

	_, err := s.cmds.Complete(s.ctx, commands.CompleteInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.True(errs.Is(err, errs.ErrInvalidTransition), "pending cannot complete")

	_, err = s.cmds.AttachReport(s.ctx, commands.ReportInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor(), Report: "early"})
	s.True(errs.Is(err, errs.ErrInvalidTransition), "report needs a completed appointment")

	_, err = s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)

	_, err = s.cmds.Complete(s.ctx, commands.CompleteInput{AppointmentID: view.ID, Actor: s.b.OwnerActor()})
	s.True(errs.Is(err, appointment.ErrWrongActor))

	got, err := s.cmds.Complete(s.ctx, commands.CompleteInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)
	s.Equal("completed", got.Status)
	s.Nil(got.Report)

	got, err = s.cmds.AttachReport(s.ctx, commands.ReportInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor(), Report: "Vaccines done"})
	s.Require().NoError(err)
	s.Require().NotNil(got.Report)
	s.Equal("Vaccines done", *got.Report)
	s.Equal("completed", got.Status)
}

// ================================================================================
// Sweep
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestAcceptThenSweep() {
	s.SetupTest()
	s.b.MainSlot = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.b.AlternativeSlots = []time.Time{time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}
	view := s.create()

	_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)
	s.True(s.store.HasRelationship(s.b.ProfessionalID, s.b.OwnerID))

	res, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, res.Completed, "nothing has elapsed yet")

	s.b.Clock.Set(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	res, err = s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, res.Completed)
	s.Equal([]uuid.UUID{view.ID}, res.IDs)

	stored, _ := s.store.Appointment(view.ID)
	s.Equal(appointment.StatusCompleted, stored.Status())

	again, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, again.Completed)

	topics := s.topics()
	s.Equal("appointment_completed", topics[len(topics)-1])
}

func (s *AppointmentCommandsTestSuite) TestSweepPolicy() {
	s.SetupTest()
	pending := s.create()
	s.b.Clock.Set(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	res, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, res.Completed, "pending is left alone by default")

	withPending := commands.NewSweepUseCase(s.store, s.b.Clock, commands.SweepPolicy{IncludePending: true})
	res, err = withPending.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{pending.ID}, res.IDs)
}

func (s *AppointmentCommandsTestSuite) TestSweepSkipsSettledAppointments() {
	s.SetupTest()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	book := func(hour int) *queries.AppointmentView {
		s.b.MainSlot = day.Add(time.Duration(hour) * time.Hour)
		s.b.AlternativeSlots = nil
		view := s.create()
		_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
		s.Require().NoError(err)
		return view
	}
	eligible := book(8)
	cancelled := book(9)
	completed := book(10)

	_, err := s.cmds.Cancel(s.ctx, commands.CancelInput{AppointmentID: cancelled.ID, Actor: s.b.OwnerActor(), Reason: "lame"})
	s.Require().NoError(err)
	_, err = s.cmds.Complete(s.ctx, commands.CompleteInput{AppointmentID: completed.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)
	jobsBefore := len(s.store.Jobs())

	s.b.Clock.Set(day.Add(12 * time.Hour))
	res, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, res.Completed)
	s.Equal([]uuid.UUID{eligible.ID}, res.IDs)
	s.Len(s.store.Jobs(), jobsBefore+1)

	for id, want := range map[uuid.UUID]appointment.Status{
		eligible.ID:  appointment.StatusCompleted,
		cancelled.ID: appointment.StatusCancelled,
		completed.ID: appointment.StatusCompleted,
	} {
		stored, ok := s.store.Appointment(id)
		s.Require().True(ok)
		s.Equal(want, stored.Status())
	}
	stored, _ := s.store.Appointment(cancelled.ID)
	s.Require().NotNil(stored.CancelReason())
	s.Equal("lame", *stored.CancelReason())
}

func (s *AppointmentCommandsTestSuite) TestSweepRequiresStrictlyElapsedSlot() {
	s.SetupTest()
	s.b.MainSlot = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.b.AlternativeSlots = nil
	view := s.create()
	_, err := s.cmds.Accept(s.ctx, commands.AcceptInput{AppointmentID: view.ID, Actor: s.b.ProfessionalActor()})
	s.Require().NoError(err)

	s.b.Clock.Set(s.b.MainSlot)
	res, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, res.Completed, "a slot starting now has not elapsed")
	stored, _ := s.store.Appointment(view.ID)
	s.Equal(appointment.StatusConfirmed, stored.Status())

	s.b.Clock.Set(s.b.MainSlot.Add(time.Second))
	res, err = s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{view.ID}, res.IDs)
}

func (s *AppointmentCommandsTestSuite) TestSweepRetriesTransientFailures() {
	s.SetupTest()
	transient := errs.Mark(errs.New("serialization failure"), errs.ErrTransient)

	s.store.FailNextAttempts(transient, transient)
	res, err := s.sweep.RunCompletionSweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, res.Completed)
	s.Equal(3, s.store.Attempts())

	s.store.FailNextAttempts(transient, transient, transient)
	_, err = s.sweep.RunCompletionSweep(s.ctx)
	s.True(errs.Is(err, errs.ErrTransient))
}
