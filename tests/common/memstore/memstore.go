//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork and read-store set for
// usecase tests. A transaction works on a copy of the state and publishes it
// only when fn succeeds.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/relationship"
	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/errs"
	"ekicare/internal/usecase/queries"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type pairKey [2]uuid.UUID

type state struct {
	appointments  map[uuid.UUID]*appointment.Appointment
	relationships map[pairKey]time.Time
	idempotency   map[pairKey]shared.IdempotencyRecord
	jobs          []Job
}

func (s *state) clone() *state {
	c := &state{
		appointments:  make(map[uuid.UUID]*appointment.Appointment, len(s.appointments)),
		relationships: make(map[pairKey]time.Time, len(s.relationships)),
		idempotency:   make(map[pairKey]shared.IdempotencyRecord, len(s.idempotency)),
		jobs:          append([]Job(nil), s.jobs...),
	}
	for k, v := range s.appointments {
		c.appointments[k] = copyAppointment(v)
	}
	for k, v := range s.relationships {
		c.relationships[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

type Store struct {
	mu            sync.Mutex
	professionals map[uuid.UUID]shared.ProfessionalSnapshot
	owners        map[uuid.UUID]shared.OwnerSnapshot
	cur           *state

	failures []error
	attempts int
}

func New() *Store {
	return &Store{
		professionals: make(map[uuid.UUID]shared.ProfessionalSnapshot),
		owners:        make(map[uuid.UUID]shared.OwnerSnapshot),
		cur: &state{
			appointments:  make(map[uuid.UUID]*appointment.Appointment),
			relationships: make(map[pairKey]time.Time),
			idempotency:   make(map[pairKey]shared.IdempotencyRecord),
		},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) AddProfessional(p shared.ProfessionalSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.professionals[p.ID] = p
}

func (s *Store) AddOwner(o shared.OwnerSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[o.ID] = o
}

// Seed stores a directly, bypassing transactions.
func (s *Store) Seed(a *appointment.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.appointments[a.ID()] = copyAppointment(a)
}

// FailNextAttempts makes the next transaction attempts fail with the given
// errors, in order, before fn runs.
func (s *Store) FailNextAttempts(errors ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, errors...)
}

// Attempts counts every transaction attempt, failed or not.
func (s *Store) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Store) Appointment(id uuid.UUID) (*appointment.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.cur.appointments[id]
	if !ok {
		return nil, false
	}
	return copyAppointment(a), true
}

func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cur.appointments)
}

func (s *Store) HasRelationship(professionalID, ownerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cur.relationships[pairKey{professionalID, ownerID}]
	return ok
}

func (s *Store) RelationshipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cur.relationships)
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.cur.jobs...)
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.cur.idempotency[pairKey{key, userID}]
	return rec, ok
}

// PutIdempotency overwrites a key record, e.g. to simulate a stale claim.
func (s *Store) PutIdempotency(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.idempotency[pairKey{rec.Key, rec.UserID}] = rec
}

// UnitOfWork

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.attempt(ctx, fn)
}

func (s *Store) WithinRetry(ctx context.Context, maxRetries int, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for i := 0; i <= maxRetries; i++ {
		err = s.attempt(ctx, fn)
		if err == nil || !errs.Is(err, errs.ErrTransient) {
			return err
		}
	}
	return err
}

func (s *Store) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return err
	}

	work := s.cur.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		return err
	}
	s.cur = work
	return nil
}

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Appointments() shared.AppointmentRepository   { return &appointments{t.st} }
func (t *tx) Relationships() shared.RelationshipRepository { return &relationships{t.store, t.st} }
func (t *tx) Idempotency() shared.IdempotencyRepository    { return &idempotency{t.st} }
func (t *tx) Notifications() shared.NotificationRepository { return &notifications{t.st} }
func (t *tx) Reads() shared.CommandReads                   { return &reads{store: t.store, st: t.st} }
func (t *tx) DB() pgq.DBTX                                 { return nil }

// reads serves command-side lookups. st is nil outside a transaction, in
// which case the store lock is taken.
type reads struct {
	store *Store
	st    *state
}

func (r *reads) ProfessionalByID(_ context.Context, id uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	if r.st == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	p, ok := r.store.professionals[id]
	if !ok {
		return nil, infra.WrapRepoErr("professional not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *reads) OwnerByID(_ context.Context, id uuid.UUID) (*shared.OwnerSnapshot, error) {
	if r.st == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	o, ok := r.store.owners[id]
	if !ok {
		return nil, infra.WrapRepoErr("owner not found", nil, infra.KindNotFound)
	}
	o.AnimalIDs = append([]uuid.UUID(nil), o.AnimalIDs...)
	return &o, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	st := r.st
	if st == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		st = r.store.cur
	}
	rec, ok := st.idempotency[pairKey{key, userID}]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

type appointments struct{ st *state }

func (r *appointments) Create(_ context.Context, _ pgq.DBTX, a *appointment.Appointment) error {
	if _, ok := r.st.appointments[a.ID()]; ok {
		return infra.WrapRepoErr("appointment exists", nil, infra.KindDuplicateKey)
	}
	r.st.appointments[a.ID()] = copyAppointment(a)
	return nil
}

func (r *appointments) FindByIDForUpdate(_ context.Context, _ pgq.DBTX, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.st.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return copyAppointment(a), nil
}

func (r *appointments) SaveTransition(_ context.Context, _ pgq.DBTX, a *appointment.Appointment, prev appointment.Status) error {
	stored, ok := r.st.appointments[a.ID()]
	if !ok || stored.Status() != prev {
		return shared.ErrStaleAppointment
	}
	r.st.appointments[a.ID()] = copyAppointment(a)
	return nil
}

func (r *appointments) CompleteElapsed(_ context.Context, _ pgq.DBTX, eligible []appointment.Status, now time.Time) ([]shared.CompletedAppointment, error) {
	var out []shared.CompletedAppointment
	for id, a := range r.st.appointments {
		if !containsStatus(eligible, a.Status()) || !a.MainSlot().Time().Before(now) {
			continue
		}
		r.st.appointments[id] = withStatus(a, appointment.StatusCompleted, now)
		out = append(out, shared.CompletedAppointment{
			ID:             id,
			ProfessionalID: a.ProfessionalID(),
			OwnerID:        a.OwnerID(),
			MainSlot:       a.MainSlot().Time(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0 })
	return out, nil
}

type relationships struct {
	store *Store
	st    *state
}

func (r *relationships) Ensure(_ context.Context, _ pgq.DBTX, rel *relationship.ClientRelationship) (bool, error) {
	if _, ok := r.store.professionals[rel.ProfessionalID()]; !ok {
		return false, infra.WrapRepoErr("unknown professional", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.store.owners[rel.OwnerID()]; !ok {
		return false, infra.WrapRepoErr("unknown owner", nil, infra.KindForeignKeyViolated)
	}
	key := pairKey{rel.ProfessionalID(), rel.OwnerID()}
	if _, ok := r.st.relationships[key]; ok {
		return false, nil
	}
	r.st.relationships[key] = rel.CreatedAt()
	return true, nil
}

type idempotency struct{ st *state }

func (r *idempotency) TryInsert(_ context.Context, _ pgq.DBTX, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) error {
	k := pairKey{key, userID}
	if _, ok := r.st.idempotency[k]; ok {
		return nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r *idempotency) UpdateStatusCompleted(_ context.Context, _ pgq.DBTX, key, userID uuid.UUID, _ string, appointmentID uuid.UUID) error {
	k := pairKey{key, userID}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultAppointmentID = &appointmentID
	r.st.idempotency[k] = rec
	return nil
}

// ClaimExpired mirrors the SQL guard: only a processing row past its expiry
// can be taken over. expiresAt is now plus the TTL.
func (r *idempotency) ClaimExpired(_ context.Context, _ pgq.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	k := pairKey{key, userID}
	rec, ok := r.st.idempotency[k]
	if !ok || rec.Status != shared.IdempotencyStatusProcessing || !rec.ExpiresAt.Before(expiresAt.Add(-idempotencyLifetime)) {
		return 0, nil
	}
	rec.RequestHash = requestHash
	rec.ExpiresAt = expiresAt
	r.st.idempotency[k] = rec
	return 1, nil
}

// idempotencyLifetime matches the TTL the create command applies.
const idempotencyLifetime = 24 * time.Hour

type notifications struct{ st *state }

func (r *notifications) CreateJob(_ context.Context, _ pgq.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.st.jobs = append(r.st.jobs, Job{Kind: kind, Topic: topic, Payload: append([]byte(nil), payload...), RunAt: runAt})
	return nil
}

// Read stores

var (
	_ queries.AppointmentReadStore  = (*Store)(nil)
	_ queries.SlotReadStore         = (*Store)(nil)
	_ queries.ProfessionalLookup    = (*Store)(nil)
	_ queries.RelationshipReadStore = (*Store)(nil)
)

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.cur.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment view not found", nil, infra.KindNotFound)
	}
	return s.view(a), nil
}

func (s *Store) FindByParticipantFirstPage(_ context.Context, participantID uuid.UUID, side queries.Side, statuses []appointment.Status, limit int32) ([]*queries.AppointmentView, error) {
	return s.list(participantID, side, statuses, nil, uuid.Nil, limit), nil
}

func (s *Store) FindByParticipantKeyset(_ context.Context, participantID uuid.UUID, side queries.Side, statuses []appointment.Status, lastMainSlot time.Time, lastID uuid.UUID, limit int32) ([]*queries.AppointmentView, error) {
	return s.list(participantID, side, statuses, &lastMainSlot, lastID, limit), nil
}

func (s *Store) list(participantID uuid.UUID, side queries.Side, statuses []appointment.Status, lastMainSlot *time.Time, lastID uuid.UUID, limit int32) []*queries.AppointmentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []*appointment.Appointment
	for _, a := range s.cur.appointments {
		switch side {
		case queries.SideProfessional:
			if a.ProfessionalID() != participantID {
				continue
			}
		case queries.SideOwner:
			if a.OwnerID() != participantID {
				continue
			}
		default:
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, a.Status()) {
			continue
		}
		if lastMainSlot != nil && !before(a, *lastMainSlot, lastID) {
			continue
		}
		rows = append(rows, a)
	}

	// main_slot DESC, id DESC
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := rows[i].MainSlot().Time(), rows[j].MainSlot().Time()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		idi, idj := rows[i].ID(), rows[j].ID()
		return bytes.Compare(idi[:], idj[:]) > 0
	})
	if int(limit) < len(rows) {
		rows = rows[:limit]
	}

	out := make([]*queries.AppointmentView, len(rows))
	for i, a := range rows {
		out[i] = s.view(a)
	}
	return out
}

// before reports (main_slot, id) < (t, id) in row comparison order.
func before(a *appointment.Appointment, t time.Time, id uuid.UUID) bool {
	at := a.MainSlot().Time()
	if !at.Equal(t) {
		return at.Before(t)
	}
	aid := a.ID()
	return bytes.Compare(aid[:], id[:]) < 0
}

func (s *Store) LiveSlotsForDay(_ context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]appointment.SlotRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inDay := func(t time.Time) bool { return !t.Before(dayStart) && t.Before(dayEnd) }

	var out []appointment.SlotRecord
	for _, a := range s.cur.appointments {
		if a.ProfessionalID() != professionalID || !a.Status().IsLive() {
			continue
		}
		rec := a.SlotRecord()
		hit := inDay(rec.MainSlot)
		for _, t := range rec.AlternativeSlots {
			hit = hit || inDay(t)
		}
		if hit {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) ProfessionalByID(ctx context.Context, id uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	return (&reads{store: s}).ProfessionalByID(ctx, id)
}

func (s *Store) ListClients(_ context.Context, professionalID uuid.UUID) ([]*queries.ClientView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*queries.ClientView
	for k, since := range s.cur.relationships {
		if k[0] != professionalID {
			continue
		}
		out = append(out, &queries.ClientView{
			OwnerID:   k[1],
			OwnerName: s.owners[k[1]].DisplayName,
			Since:     since,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OwnerName < out[j].OwnerName })
	return out, nil
}

func (s *Store) view(a *appointment.Appointment) *queries.AppointmentView {
	v := &queries.AppointmentView{
		ID:               a.ID(),
		ProfessionalID:   a.ProfessionalID(),
		ProfessionalName: s.professionals[a.ProfessionalID()].DisplayName,
		OwnerID:          a.OwnerID(),
		OwnerName:        s.owners[a.OwnerID()].DisplayName,
		AnimalIDs:        a.AnimalIDs(),
		MainSlot:         a.MainSlot().Time(),
		AlternativeSlots: appointment.SlotTimes(a.AlternativeSlots()),
		DurationMinutes:  a.DurationMinutes(),
		Status:           a.Status().String(),
		Comment:          a.Comment().String(),
		CancelReason:     a.CancelReason(),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}
	if r := a.Report(); r != nil {
		text := r.String()
		v.Report = &text
	}
	if p := a.ProposedBy(); p != "" {
		role := string(p)
		v.ProposedBy = &role
	}
	return v
}

func containsStatus(ss []appointment.Status, s appointment.Status) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func copyAppointment(a *appointment.Appointment) *appointment.Appointment {
	return withStatus(a, a.Status(), a.UpdatedAt())
}

func withStatus(a *appointment.Appointment, status appointment.Status, updatedAt time.Time) *appointment.Appointment {
	var report *appointment.Report
	if r := a.Report(); r != nil {
		rr := *r
		report = &rr
	}
	var reason *string
	if c := a.CancelReason(); c != nil {
		cc := *c
		reason = &cc
	}
	return appointment.ReconstructAppointment(
		a.ID(), a.ProfessionalID(), a.OwnerID(),
		a.AnimalIDs(),
		a.MainSlot(),
		a.AlternativeSlots(),
		a.DurationMinutes(),
		status,
		a.Comment(),
		report,
		a.ProposedBy(),
		reason,
		a.CreatedAt(), updatedAt,
	)
}
