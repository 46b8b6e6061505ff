// Package memrepo implementa los puertos de repositorio en memoria para tests
// de servicios y handlers. Devuelve copias para imitar el aislamiento de la DB.
package memrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var (
	_ repository.TaskRepository       = (*Tasks)(nil)
	_ repository.UserRepository       = (*Users)(nil)
	_ repository.PositionRepository   = (*Positions)(nil)
	_ repository.CardRecordRepository = (*CardRecords)(nil)
	_ repository.ClosureRepository    = (*Closures)(nil)
	_ repository.ReportRepository     = (*Reports)(nil)
)

// Store agrupa todos los repositorios en memoria sobre los mismos datos.
type Store struct {
	mu        sync.Mutex
	tasks     map[string]*entity.Task
	users     map[string]*entity.User
	positions map[string]*entity.Position
	cards     map[string]*entity.CardRecord
	closures  map[string]*entity.Closure

	Tasks       *Tasks
	Users       *Users
	Positions   *Positions
	CardRecords *CardRecords
	Closures    *Closures
	Reports     *Reports

	// FailWith hace que la siguiente operación devuelva este error.
	FailWith error
}

// New crea un store vacío.
func New() *Store {
	s := &Store{
		tasks:     map[string]*entity.Task{},
		users:     map[string]*entity.User{},
		positions: map[string]*entity.Position{},
		cards:     map[string]*entity.CardRecord{},
		closures:  map[string]*entity.Closure{},
	}
	s.Tasks = &Tasks{s: s}
	s.Users = &Users{s}
	s.Positions = &Positions{s}
	s.CardRecords = &CardRecords{s}
	s.Closures = &Closures{s}
	s.Reports = &Reports{s}
	return s
}

func (s *Store) fail() error {
	if s.FailWith != nil {
		err := s.FailWith
		s.FailWith = nil
		return err
	}
	return nil
}

// RunCards ejecuta fn con los repos en memoria (sin rollback real).
func (s *Store) RunCards(_ context.Context, fn func(repository.UserRepository, repository.CardRecordRepository) error) error {
	return fn(s.Users, s.CardRecords)
}

// ── Positions ──

type Positions struct{ s *Store }

func (r *Positions) ListAll(_ context.Context) ([]*entity.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	out := make([]*entity.Position, 0, len(r.s.positions))
	for _, p := range r.s.positions {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Positions) GetByID(_ context.Context, id string) (*entity.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.positions[id]
	if !ok {
		return nil, fmt.Errorf("position %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *Positions) Create(_ context.Context, p *entity.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.positions[p.ID]; ok {
		return fmt.Errorf("position %s: %w", p.ID, domain.ErrAlreadyExists)
	}
	cp := *p
	r.s.positions[p.ID] = &cp
	return nil
}

func (r *Positions) Rename(_ context.Context, id, name string) (*entity.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.positions[id]
	if !ok {
		return nil, fmt.Errorf("position %s: %w", id, domain.ErrNotFound)
	}
	p.Name = name
	cp := *p
	return &cp, nil
}

// ── Users ──

type Users struct{ s *Store }

func copyUser(u *entity.User) *entity.User {
	cp := *u
	cp.PositionIDs = append([]string{}, u.PositionIDs...)
	return &cp
}

func (r *Users) checkPositions(ids []string) error {
	for _, id := range ids {
		if _, ok := r.s.positions[id]; !ok {
			return fmt.Errorf("position %s: %w", id, domain.ErrInvalidReference)
		}
	}
	return nil
}

func (r *Users) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if r.emailTaken(u.Email, "") {
		return fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
	}
	u.PositionIDs = entity.DedupIDs(u.PositionIDs)
	if err := r.checkPositions(u.PositionIDs); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = copyUser(u)
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return copyUser(u), nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *Users) Update(_ context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if p.Email != nil && r.emailTaken(*p.Email, id) {
		return nil, fmt.Errorf("user %s: %w", *p.Email, domain.ErrAlreadyExists)
	}
	next := copyUser(u)
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Email != nil {
		next.Email = *p.Email
	}
	if p.Role != nil {
		next.Role = *p.Role
	}
	if p.PasswordHash != nil {
		next.PasswordHash = *p.PasswordHash
	}
	if p.PositionIDs != nil {
		ids := entity.DedupIDs(*p.PositionIDs)
		if err := r.checkPositions(ids); err != nil {
			return nil, err
		}
		next.PositionIDs = ids
	}
	next.UpdatedAt = time.Now().UTC()
	r.s.users[id] = next
	return copyUser(next), nil
}

// Delete imita ON DELETE SET NULL en tasks.completed_by_id y CASCADE en card_records.
func (r *Users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.users, id)
	for _, t := range r.s.tasks {
		if t.CompletedByID == id {
			t.CompletedByID = ""
		}
	}
	for k, c := range r.s.cards {
		if c.UserID == id {
			delete(r.s.cards, k)
		}
	}
	return nil
}

func (r *Users) ListAll(_ context.Context) ([]*entity.User, error) {
	return r.list(func(*entity.User) bool { return true })
}

func (r *Users) ListByPosition(_ context.Context, positionID string) ([]*entity.User, error) {
	return r.list(func(u *entity.User) bool { return u.HasPosition(positionID) })
}

func (r *Users) list(keep func(*entity.User) bool) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Tasks ──

type Tasks struct {
	s *Store
	// LastFilter último filtro recibido por List.
	LastFilter entity.TaskFilter
}

func (r *Tasks) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.positions[t.PositionID]; !ok {
		return fmt.Errorf("position %s: %w", t.PositionID, domain.ErrInvalidReference)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.s.tasks[t.ID] = &cp
	return nil
}

func (r *Tasks) GetByID(_ context.Context, id string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *Tasks) List(_ context.Context, f entity.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.LastFilter = f
	out := make([]*entity.Task, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		if f.PositionID != "" && t.PositionID != f.PositionID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Shift != "" && t.Shift != f.Shift {
			continue
		}
		if f.StartDate != nil && t.DueDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.DueDate.After(*f.EndDate) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *Tasks) Update(_ context.Context, id string, p entity.TaskPatch) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	next := *t
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.DueDate != nil {
		next.DueDate = *p.DueDate
	}
	if p.PositionID != nil {
		if _, ok := r.s.positions[*p.PositionID]; !ok {
			return nil, fmt.Errorf("position %s: %w", *p.PositionID, domain.ErrInvalidReference)
		}
		next.PositionID = *p.PositionID
	}
	if p.Shift != nil {
		next.Shift = *p.Shift
	}
	if p.CompletedByID != nil {
		next.CompletedByID = *p.CompletedByID
	}
	if p.CompletedLate != nil {
		next.CompletedLate = *p.CompletedLate
	}
	next.UpdatedAt = time.Now().UTC()
	r.s.tasks[id] = &next
	cp := next
	return &cp, nil
}

func (r *Tasks) Duplicate(_ context.Context, id string, newDueDate time.Time) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now().UTC()
	cp := entity.Task{
		ID:          uuid.NewString(),
		Title:       t.Title,
		Description: t.Description,
		Status:      entity.TaskPending,
		DueDate:     newDueDate,
		PositionID:  t.PositionID,
		Shift:       t.Shift,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.tasks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Tasks) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.tasks, id)
	return nil
}

// ── CardRecords ──

type CardRecords struct{ s *Store }

func (r *CardRecords) Upsert(_ context.Context, rec *entity.CardRecord) (*entity.CardRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, c := range r.s.cards {
		if c.UserID == rec.UserID && c.PositionID == rec.PositionID && c.CardType == rec.CardType {
			c.Count = rec.Count
			c.UpdatedAt = now
			cp := *c
			return &cp, nil
		}
	}
	cp := *rec
	cp.ID = uuid.NewString()
	cp.CreatedAt, cp.UpdatedAt = now, now
	r.s.cards[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *CardRecords) List(_ context.Context, f entity.CardRecordFilter) ([]*entity.CardRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allowed := map[string]bool{}
	for _, id := range f.PositionIDs {
		allowed[id] = true
	}
	out := make([]*entity.CardRecord, 0, len(r.s.cards))
	for _, c := range r.s.cards {
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		if f.PositionID != "" && c.PositionID != f.PositionID {
			continue
		}
		if f.PositionIDs != nil && !allowed[c.PositionID] {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count número de contadores guardados.
func (r *CardRecords) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.cards)
}

// ── Closures ──

type Closures struct{ s *Store }

func (r *Closures) Create(_ context.Context, c *entity.Closure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.positions[c.PositionID]; !ok {
		return fmt.Errorf("position %s: %w", c.PositionID, domain.ErrInvalidReference)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cp := *c
	cp.Denominations = append([]entity.Denomination{}, c.Denominations...)
	r.s.closures[c.ID] = &cp
	return nil
}

func (r *Closures) GetByID(_ context.Context, id string) (*entity.Closure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.closures[id]
	if !ok {
		return nil, fmt.Errorf("closure %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	cp.Denominations = append([]entity.Denomination{}, c.Denominations...)
	return &cp, nil
}

func (r *Closures) List(_ context.Context, f entity.ClosureFilter) ([]*entity.Closure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allowed := map[string]bool{}
	for _, id := range f.PositionIDs {
		allowed[id] = true
	}
	out := make([]*entity.Closure, 0, len(r.s.closures))
	for _, c := range r.s.closures {
		if f.PositionID != "" && c.PositionID != f.PositionID {
			continue
		}
		if f.PositionIDs != nil && !allowed[c.PositionID] {
			continue
		}
		if f.StartDate != nil && c.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && c.Date.After(*f.EndDate) {
			continue
		}
		cp := *c
		cp.Denominations = nil
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ── Reports ──

type Reports struct{ s *Store }

// Ranking cuenta por usuario no ADMIN las tareas COMPLETED con updated_at >= since.
func (r *Reports) Ranking(_ context.Context, since time.Time) ([]entity.RankingEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	var out []entity.RankingEntry
	for _, u := range r.s.users {
		if u.Role == entity.RoleAdmin {
			continue
		}
		e := entity.RankingEntry{UserID: u.ID, Name: u.Name}
		for _, t := range r.s.tasks {
			if t.CompletedByID == u.ID && t.Status == entity.TaskCompleted && !t.UpdatedAt.Before(since) {
				e.TasksCompleted++
				e.TotalTasks++
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TasksCompleted > out[j].TasksCompleted })
	return out, nil
}

// ── Seed helpers ──

// AddPosition inserta un puesto.
func (s *Store) AddPosition(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[id] = &entity.Position{ID: id, Name: name}
}

// AddUser inserta un usuario tal cual.
func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = copyUser(u)
}

// AddTask inserta una tarea tal cual.
func (s *Store) AddTask(t *entity.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tasks[t.ID] = &cp
}

// Task lee una tarea sin pasar por el repositorio.
func (s *Store) Task(id string) *entity.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}
