// Package task owns the canonical in-memory task collection and the
// operations collaborators use to change it. Every mutation is applied to
// memory first and then handed to a write queue for durable storage.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/outbox"
)

// Service defines every task operation available to collaborators
type Service interface {
	// Lifecycle
	LoadFromStore(ctx context.Context) error
	Flush(ctx context.Context) error
	Reset(ctx context.Context) error

	// Write operations
	CreateTaskFrom(text string) (models.Task, *outbox.Ticket)
	EditTask(uuid, text string) *outbox.Ticket
	MarkDone(uuid string) (*outbox.Ticket, error)
	MarkDeleted(uuid string) (*outbox.Ticket, error)
	MarkCreated(uuid string) (*outbox.Ticket, error)

	// Read operations
	Get(uuid string) (models.Task, bool)
	Tasks() []models.Task
	CreatedList() []models.Task
	DoneList() []models.Task
	DeletedList() []models.Task
	Views() Views
}

// Dispatcher accepts durable writes for asynchronous processing
type Dispatcher interface {
	Enqueue(cmd outbox.Command) (*outbox.Ticket, error)
	Flush(ctx context.Context) error
}

// Compile-time verification that *Store implements Service
var _ Service = (*Store)(nil)

// Store is the canonical in-memory task collection. It is safe for
// concurrent use; each mutation is atomic with respect to the others.
type Store struct {
	mu    sync.RWMutex
	tasks []*models.Task

	repo   database.TaskRepository
	writes Dispatcher

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// NewStore creates an empty store. Call LoadFromStore to populate it.
func NewStore(repo database.TaskRepository, writes Dispatcher, opts ...Option) *Store {
	s := &Store{
		tasks:  make([]*models.Task, 0),
		repo:   repo,
		writes: writes,
		now:    time.Now,
		newID:  defaultIDGenerator,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFromStore replaces the in-memory collection with every durable record.
// Unflushed in-memory changes are discarded.
func (s *Store) LoadFromStore(ctx context.Context) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = records
	s.logger.Debug("tasks loaded from store", "count", len(records))
	return nil
}

// CreateTaskFrom appends a new Created task with the given text and queues
// its durable insert. Empty text is ignored and yields a zero Task.
func (s *Store) CreateTaskFrom(text string) (models.Task, *outbox.Ticket) {
	if text == "" {
		return models.Task{}, nil
	}

	now := s.now().UTC()
	task := &models.Task{
		UUID:       s.newID(),
		Task:       text,
		Status:     models.StatusCreated,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)

	record := *task
	ticket := s.dispatch("add", record.UUID, func(ctx context.Context) error {
		return s.repo.Add(ctx, record)
	})
	return record, ticket
}

// EditTask replaces the text of a task. Unknown uuids and unchanged text are
// no-ops and return a nil ticket. Empty text is accepted here.
func (s *Store) EditTask(uuid, text string) *outbox.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.find(uuid)
	if task == nil || task.Task == text {
		return nil
	}

	task.Task = text
	task.ModifiedAt = models.NextModifiedAt(task.ModifiedAt, s.now())

	modifiedAt := task.ModifiedAt
	return s.dispatch("edit", uuid, func(ctx context.Context) error {
		return s.repo.Update(ctx, uuid, func(rec *models.Task) {
			rec.Task = text
			rec.ModifiedAt = modifiedAt
		})
	})
}

// MarkDone moves a task to Done
func (s *Store) MarkDone(uuid string) (*outbox.Ticket, error) {
	return s.transition(uuid, models.MarkDone)
}

// MarkDeleted moves a task to Deleted. The record is kept.
func (s *Store) MarkDeleted(uuid string) (*outbox.Ticket, error) {
	return s.transition(uuid, models.MarkDeleted)
}

// MarkCreated reopens a Done task or restores a Deleted one
func (s *Store) MarkCreated(uuid string) (*outbox.Ticket, error) {
	return s.transition(uuid, models.MarkCreated)
}

func (s *Store) transition(uuid string, tr models.Transition) (*outbox.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.find(uuid)
	if task == nil {
		return nil, nil
	}

	next, err := models.Apply(task.Status, tr)
	if err != nil {
		return nil, err
	}

	task.Status = next
	task.ModifiedAt = models.NextModifiedAt(task.ModifiedAt, s.now())

	modifiedAt := task.ModifiedAt
	return s.dispatch(tr.String(), uuid, func(ctx context.Context) error {
		return s.repo.Update(ctx, uuid, func(rec *models.Task) {
			rec.Status = next
			rec.ModifiedAt = modifiedAt
		})
	}), nil
}

// Get returns a copy of the task with the given uuid
func (s *Store) Get(uuid string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task := s.find(uuid)
	if task == nil {
		return models.Task{}, false
	}
	return *task, true
}

// Tasks returns a snapshot of the canonical collection in order
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		snapshot[i] = *t
	}
	return snapshot
}

// CreatedList returns the tasks with status Created
func (s *Store) CreatedList() []models.Task {
	return Filter(s.Tasks(), models.StatusCreated)
}

// DoneList returns the tasks with status Done
func (s *Store) DoneList() []models.Task {
	return Filter(s.Tasks(), models.StatusDone)
}

// DeletedList returns the tasks with status Deleted
func (s *Store) DeletedList() []models.Task {
	return Filter(s.Tasks(), models.StatusDeleted)
}

// Views partitions a single snapshot so the three lists are consistent
func (s *Store) Views() Views {
	return Partition(s.Tasks())
}

// Flush waits until every queued durable write has been processed
func (s *Store) Flush(ctx context.Context) error {
	return s.writes.Flush(ctx)
}

// Reset waits for queued writes, erases the durable store and empties memory
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writes.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush pending writes: %w", err)
	}
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	s.tasks = make([]*models.Task, 0)
	s.logger.Info("task store reset")
	return nil
}

// find returns the first task with uuid. Callers must hold s.mu.
func (s *Store) find(uuid string) *models.Task {
	for _, t := range s.tasks {
		if t.UUID == uuid {
			return t
		}
	}
	return nil
}

// dispatch queues a durable write. Callers hold s.mu so writes are queued in
// the same order their in-memory effects were applied.
func (s *Store) dispatch(name, uuid string, apply func(ctx context.Context) error) *outbox.Ticket {
	ticket, err := s.writes.Enqueue(outbox.Command{Name: name, Key: uuid, Apply: apply})
	if err != nil {
		s.logger.Warn("durable write not queued", "command", name, "uuid", uuid, "error", err)
		return outbox.Resolved(err)
	}
	return ticket
}
