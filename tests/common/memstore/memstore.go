//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork. Transactions run one at a
// time against a copy of the tables, and the copy replaces the tables on success.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.Mutex
	t       *tables
	failErr error

	Commits   int
	Rollbacks int
	// LastTrace lists the lock and read calls of the most recent transaction, in order.
	LastTrace []string
}

type tables struct {
	users        map[uuid.UUID]*user.User
	plans        map[uuid.UUID]*membership.Plan
	assignments  map[uuid.UUID]*membership.Assignment
	reservations map[uuid.UUID]*reservation.Reservation
}

func New() *Store {
	return &Store{t: &tables{
		users:        map[uuid.UUID]*user.User{},
		plans:        map[uuid.UUID]*membership.Plan{},
		assignments:  map[uuid.UUID]*membership.Assignment{},
		reservations: map[uuid.UUID]*reservation.Reservation{},
	}}
}

var _ shared.UnitOfWork = (*Store)(nil)

// FailNextWith makes the next transaction fail with err before running.
func (s *Store) FailNextWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failErr; err != nil {
		s.failErr = nil
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.t.clone()
	x := &tx{t: work}
	err := fn(ctx, x)
	s.LastTrace = x.trace
	if err != nil {
		s.Rollbacks++
		return err
	}
	s.t = work
	s.Commits++
	return nil
}

// Seeding and inspection helpers. Values are copied in both directions.

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.users[u.ID()] = copyUser(u)
}

func (s *Store) PutPlan(p *membership.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.plans[p.ID()] = copyPlan(p)
}

func (s *Store) PutAssignment(a *membership.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.assignments[a.ID()] = copyAssignment(a)
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.reservations[r.ID()] = copyReservation(r)
}

func (s *Store) User(id uuid.UUID) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.t.users[id]; ok {
		return copyUser(u)
	}
	return nil
}

func (s *Store) Assignment(id uuid.UUID) *membership.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.t.assignments[id]; ok {
		return copyAssignment(a)
	}
	return nil
}

func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.t.reservations[id]; ok {
		return copyReservation(r)
	}
	return nil
}

func (s *Store) Assignments() []*membership.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*membership.Assignment, 0, len(s.t.assignments))
	for _, a := range s.t.assignments {
		out = append(out, copyAssignment(a))
	}
	return out
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.t.reservations))
	for _, r := range s.t.reservations {
		out = append(out, copyReservation(r))
	}
	return out
}

func (t *tables) clone() *tables {
	c := &tables{
		users:        make(map[uuid.UUID]*user.User, len(t.users)),
		plans:        make(map[uuid.UUID]*membership.Plan, len(t.plans)),
		assignments:  make(map[uuid.UUID]*membership.Assignment, len(t.assignments)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(t.reservations)),
	}
	for id, u := range t.users {
		c.users[id] = copyUser(u)
	}
	for id, p := range t.plans {
		c.plans[id] = copyPlan(p)
	}
	for id, a := range t.assignments {
		c.assignments[id] = copyAssignment(a)
	}
	for id, r := range t.reservations {
		c.reservations[id] = copyReservation(r)
	}
	return c
}

type tx struct {
	t     *tables
	trace []string
}

func (x *tx) record(op string) { x.trace = append(x.trace, op) }

func (x *tx) Users() shared.UserRepository               { return userRepo{x.t, x} }
func (x *tx) Plans() shared.PlanRepository               { return planRepo{x.t} }
func (x *tx) Assignments() shared.AssignmentRepository   { return assignmentRepo{x.t, x} }
func (x *tx) Reservations() shared.ReservationRepository { return reservationRepo{x.t, x} }
func (x *tx) Locks() shared.SlotLocker                   { return dateLock{x} }

type userRepo struct {
	t *tables
	x *tx
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.t.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return copyUser(u), nil
}

func (r userRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.x.record(TraceLockUser)
	return r.FindByID(ctx, id)
}

func (r userRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := r.t.users[id]
	if !ok {
		return infra.NotFound("user not found")
	}
	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}
	return nil
}

type planRepo struct{ t *tables }

func (r planRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.Plan, error) {
	p, ok := r.t.plans[id]
	if !ok {
		return nil, infra.NotFound("plan not found")
	}
	return copyPlan(p), nil
}

func (r planRepo) ListOffered(context.Context) ([]*membership.Plan, error) {
	var out []*membership.Plan
	for _, p := range r.t.plans {
		if p.IsOffered() {
			out = append(out, copyPlan(p))
		}
	}
	slices.SortFunc(out, func(a, b *membership.Plan) int {
		return cmp.Or(cmp.Compare(a.Price().Cents(), b.Price().Cents()), cmp.Compare(a.Name(), b.Name()))
	})
	return out, nil
}

type assignmentRepo struct {
	t *tables
	x *tx
}

func (r assignmentRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*membership.Assignment, error) {
	r.x.record(TraceListAssignments)
	var out []*membership.Assignment
	for _, a := range r.t.assignments {
		if a.UserID() == userID && a.IsActive() {
			out = append(out, copyAssignment(a))
		}
	}
	slices.SortFunc(out, func(a, b *membership.Assignment) int { return b.Start().Compare(a.Start()) })
	return out, nil
}

func (r assignmentRepo) ListExpiredActive(_ context.Context, now time.Time) ([]*membership.Assignment, error) {
	var out []*membership.Assignment
	for _, a := range r.t.assignments {
		if a.IsActive() && a.End().Before(now) {
			out = append(out, copyAssignment(a))
		}
	}
	return out, nil
}

func (r assignmentRepo) Create(_ context.Context, a *membership.Assignment) error {
	r.t.assignments[a.ID()] = copyAssignment(a)
	return nil
}

func (r assignmentRepo) Deactivate(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.x.record(TraceDeactivateAssignments)
	var n int64
	for _, id := range ids {
		if a, ok := r.t.assignments[id]; ok && a.IsActive() {
			a.Deactivate()
			n++
		}
	}
	return n, nil
}

func (r assignmentRepo) DeactivateAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range r.t.assignments {
		if a.UserID() == userID && a.IsActive() {
			a.Deactivate()
			n++
		}
	}
	return n, nil
}

type reservationRepo struct {
	t *tables
	x *tx
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	r.t.reservations[res.ID()] = copyReservation(res)
	return nil
}

func (r reservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.t.reservations[id]
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return copyReservation(res), nil
}

func (r reservationRepo) ListActiveByDate(_ context.Context, date time.Time) ([]*reservation.Reservation, error) {
	r.x.record(TraceListReservations)
	var out []*reservation.Reservation
	for _, res := range r.t.reservations {
		if res.Status().Occupies() && sameDay(res.Date(), date) {
			out = append(out, copyReservation(res))
		}
	}
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return cmp.Compare(a.Slot().Start(), b.Slot().Start())
	})
	return out, nil
}

func (r reservationRepo) ListByUser(_ context.Context, userID uuid.UUID, from time.Time) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.t.reservations {
		if res.UserID() == userID && !res.Date().Before(from) {
			out = append(out, copyReservation(res))
		}
	}
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return a.Slot().StartAt().Compare(b.Slot().StartAt())
	})
	return out, nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.t.reservations[res.ID()]; !ok {
		return infra.NotFound("reservation not found")
	}
	r.t.reservations[res.ID()] = copyReservation(res)
	return nil
}

const (
	TraceLockDate         = "lock_date"
	TraceListAssignments  = "list_active_assignments"
	TraceListReservations = "list_date_reservations"

	TraceLockUser              = "lock_user"
	TraceDeactivateAssignments = "deactivate_assignments"
)

// Transactions already run one at a time, so the date lock only leaves a trace.
type dateLock struct{ x *tx }

func (l dateLock) LockDate(context.Context, time.Time) error {
	l.x.record(TraceLockDate)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func copyUser(u *user.User) *user.User {
	return user.ReconstructUser(u.ID(), u.Role(), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
}

func copyPlan(p *membership.Plan) *membership.Plan {
	return membership.ReconstructPlan(p.ID(), p.Name(), p.Price(), p.DurationDays(),
		p.AllowsRoutine(), p.AllowsDiet(), p.IsOffered(), p.CreatedAt(), p.UpdatedAt())
}

func copyAssignment(a *membership.Assignment) *membership.Assignment {
	return membership.ReconstructAssignment(a.ID(), a.UserID(), a.PlanID(), a.Price(), a.Window(), a.IsActive(), a.CreatedAt())
}

func copyReservation(r *reservation.Reservation) *reservation.Reservation {
	var attendance *reservation.Attendance
	if a := r.Attendance(); a != nil {
		c := *a
		attendance = &c
	}
	return reservation.ReconstructReservation(r.ID(), r.UserID(), r.Slot(), r.Status(), attendance, r.CreatedAt(), r.UpdatedAt())
}
