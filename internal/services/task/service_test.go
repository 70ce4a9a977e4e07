package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/outbox"
	"github.com/thenoetrevino/todo/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// fakeClock returns a time source that advances one second per call
func fakeClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

// setupTestStore builds a store over an in-memory database and a running outbox
func setupTestStore(t *testing.T, opts ...Option) (*Store, *database.TaskRepo) {
	t.Helper()
	repo := database.NewTaskRepo(testutil.SetupTestDB(t))

	writes := outbox.New(64, outbox.WithBaseDelay(time.Millisecond))
	writes.Start(context.Background())
	t.Cleanup(func() {
		_ = writes.Shutdown(context.Background())
	})

	store := NewStore(repo, writes, append([]Option{WithClock(fakeClock())}, opts...)...)
	require.NoError(t, store.LoadFromStore(context.Background()))
	return store, repo
}

// assertPartition checks the three views split the collection exactly
func assertPartition(t *testing.T, store *Store) {
	t.Helper()
	all := store.Tasks()
	views := store.Views()

	assert.Equal(t, len(all), views.Len(), "views must cover the collection")

	seen := make(map[string]int)
	for _, list := range [][]models.Task{views.Created, views.Done, views.Deleted} {
		for _, task := range list {
			seen[task.UUID]++
		}
	}
	for _, task := range all {
		assert.Equal(t, 1, seen[task.UUID], "task %s must appear in exactly one view", task.UUID)
	}
}

func contains(tasks []models.Task, uuid string) bool {
	for _, t := range tasks {
		if t.UUID == uuid {
			return true
		}
	}
	return false
}

// ============================================================================
// LOAD
// ============================================================================

func TestLoadFromStore_FreshStoreIsEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.Empty(t, store.Tasks())
}

func TestLoadFromStore_ReadsExistingRecords(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, repo.Add(ctx, models.Task{
		UUID:       "preexisting",
		Task:       "task 1",
		Status:     models.StatusCreated,
		CreatedAt:  now,
		ModifiedAt: now,
	}))

	require.NoError(t, store.LoadFromStore(ctx))
	require.Len(t, store.Tasks(), 1)
	assert.Equal(t, "task 1", store.Tasks()[0].Task)
}

func TestLoadFromStore_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)

	store.CreateTaskFrom("kept")
	require.NoError(t, store.Flush(ctx))

	now := time.Now().UTC()
	require.NoError(t, repo.Add(ctx, models.Task{
		UUID:       "unknown-status",
		Task:       "from a newer build",
		Status:     models.Status(7),
		CreatedAt:  now,
		ModifiedAt: now,
	}))

	err := store.LoadFromStore(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrCorruptRecord)

	// Memory is left as it was, so the views still cover every task
	require.Len(t, store.Tasks(), 1)
	assertPartition(t, store)
}

func TestLoadFromStore_OverwritesMemory(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)

	store.CreateTaskFrom("flushed")
	require.NoError(t, store.Flush(ctx))
	require.NoError(t, repo.Clear(ctx))

	require.NoError(t, store.LoadFromStore(ctx))
	assert.Empty(t, store.Tasks())
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateTaskFrom_VisibleImmediately(t *testing.T) {
	store, _ := setupTestStore(t)

	task, ticket := store.CreateTaskFrom("task 1")
	require.NotNil(t, ticket)

	require.Len(t, store.Tasks(), 1)
	assert.Equal(t, task, store.Tasks()[0])
	assert.Equal(t, models.StatusCreated, task.Status)
	assert.NotEmpty(t, task.UUID)
	assert.Equal(t, task.CreatedAt, task.ModifiedAt)
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
}

func TestCreateTaskFrom_PersistsAfterReload(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	earlier, _ := store.CreateTaskFrom("earlier")
	task, ticket := store.CreateTaskFrom("x")
	require.NoError(t, ticket.Wait(ctx))

	require.NoError(t, store.LoadFromStore(ctx))
	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "x", tasks[1].Task)
	assert.Equal(t, task.UUID, tasks[1].UUID)
	assert.NotEqual(t, earlier.UUID, tasks[1].UUID)
}

func TestCreateTaskFrom_EmptyTextIsNoop(t *testing.T) {
	store, _ := setupTestStore(t)
	store.CreateTaskFrom("existing")
	before := len(store.Tasks())

	task, ticket := store.CreateTaskFrom("")

	assert.Equal(t, models.Task{}, task)
	assert.Nil(t, ticket)
	assert.Equal(t, before, len(store.Tasks()))
}

func TestCreateTaskFrom_UniqueUUIDs(t *testing.T) {
	store, _ := setupTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		task, _ := store.CreateTaskFrom("task")
		assert.False(t, seen[task.UUID], "uuid %s generated twice", task.UUID)
		seen[task.UUID] = true
	}
}

func TestCreateTaskFrom_QueueFailureStillUpdatesMemory(t *testing.T) {
	repo := database.NewTaskRepo(testutil.SetupTestDB(t))
	writes := outbox.New(1) // never started, so the second write cannot be queued
	t.Cleanup(func() { _ = writes.Shutdown(context.Background()) })
	store := NewStore(repo, writes)

	_, first := store.CreateTaskFrom("first")
	_, second := store.CreateTaskFrom("second")

	assert.Len(t, store.Tasks(), 2)
	select {
	case <-first.Done():
		t.Fatal("first write should still be queued")
	default:
	}
	assert.True(t, errors.Is(second.Err(), outbox.ErrQueueFull))
}

// ============================================================================
// EDIT
// ============================================================================

func TestEditTask_SameTextIsNoop(t *testing.T) {
	store, _ := setupTestStore(t)
	task, _ := store.CreateTaskFrom("same")

	ticket := store.EditTask(task.UUID, "same")
	assert.Nil(t, ticket)

	got, ok := store.Get(task.UUID)
	require.True(t, ok)
	assert.Equal(t, task.ModifiedAt, got.ModifiedAt)
}

func TestEditTask_UpdatesTextAndModifiedAt(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)
	task, _ := store.CreateTaskFrom("before")

	ticket := store.EditTask(task.UUID, "after")
	require.NotNil(t, ticket)

	got, ok := store.Get(task.UUID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Task)
	assert.True(t, got.ModifiedAt.After(task.ModifiedAt), "modified_at must strictly increase")
	assert.Equal(t, task.CreatedAt, got.CreatedAt)

	require.NoError(t, ticket.Wait(ctx))
	stored, err := repo.Get(ctx, task.UUID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Task)
	assert.True(t, got.ModifiedAt.Equal(stored.ModifiedAt))
}

func TestEditTask_StalledClockStillIncreases(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store, _ := setupTestStore(t, WithClock(func() time.Time { return frozen }))
	task, _ := store.CreateTaskFrom("one")

	store.EditTask(task.UUID, "two")
	got, _ := store.Get(task.UUID)
	assert.True(t, got.ModifiedAt.After(task.ModifiedAt))
}

func TestEditTask_EmptyTextAccepted(t *testing.T) {
	store, _ := setupTestStore(t)
	task, _ := store.CreateTaskFrom("text")

	assert.NotNil(t, store.EditTask(task.UUID, ""))
	got, _ := store.Get(task.UUID)
	assert.Equal(t, "", got.Task)
}

func TestEditTask_UnknownUUIDIsNoop(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.Nil(t, store.EditTask("missing", "text"))
	assert.Empty(t, store.Tasks())
}

// ============================================================================
// TRANSITIONS
// ============================================================================

func TestMark_DoneThenDeleted(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)
	task, _ := store.CreateTaskFrom("buy milk")
	assert.Equal(t, models.StatusCreated, task.Status)

	ticket, err := store.MarkDone(task.UUID)
	require.NoError(t, err)
	got, _ := store.Get(task.UUID)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.True(t, contains(store.DoneList(), task.UUID))
	assert.False(t, contains(store.CreatedList(), task.UUID))
	assertPartition(t, store)
	require.NoError(t, ticket.Wait(ctx))

	ticket, err = store.MarkDeleted(task.UUID)
	require.NoError(t, err)
	got, _ = store.Get(task.UUID)
	assert.Equal(t, models.StatusDeleted, got.Status)
	assert.True(t, contains(store.DeletedList(), task.UUID))
	assert.False(t, contains(store.DoneList(), task.UUID))
	assert.False(t, contains(store.CreatedList(), task.UUID))
	assertPartition(t, store)
	require.NoError(t, ticket.Wait(ctx))

	stored, err := repo.Get(ctx, task.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, stored.Status)
	assert.True(t, stored.ModifiedAt.After(stored.CreatedAt))
}

func TestMark_IllegalTransitionLeavesTaskUntouched(t *testing.T) {
	store, _ := setupTestStore(t)
	task, _ := store.CreateTaskFrom("task")
	_, err := store.MarkDeleted(task.UUID)
	require.NoError(t, err)
	before, _ := store.Get(task.UUID)

	ticket, err := store.MarkDone(task.UUID)
	assert.Nil(t, ticket)
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	after, _ := store.Get(task.UUID)
	assert.Equal(t, before, after)
}

func TestMarkCreated_RestoresDeletedTask(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)
	task, _ := store.CreateTaskFrom("task")
	_, err := store.MarkDeleted(task.UUID)
	require.NoError(t, err)

	ticket, err := store.MarkCreated(task.UUID)
	require.NoError(t, err)
	require.NoError(t, ticket.Wait(ctx))

	assert.True(t, contains(store.CreatedList(), task.UUID))
	stored, err := repo.Get(ctx, task.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, stored.Status)
}

func TestMarkCreated_AlreadyCreatedIsIllegal(t *testing.T) {
	store, _ := setupTestStore(t)
	task, _ := store.CreateTaskFrom("task")

	_, err := store.MarkCreated(task.UUID)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestMark_UnknownUUIDIsNoop(t *testing.T) {
	store, _ := setupTestStore(t)

	for _, mark := range []func(string) (*outbox.Ticket, error){store.MarkDone, store.MarkDeleted, store.MarkCreated} {
		ticket, err := mark("missing")
		assert.NoError(t, err)
		assert.Nil(t, ticket)
	}
}

// ============================================================================
// VIEWS & RESET
// ============================================================================

func TestViews_PartitionAfterMixedOperations(t *testing.T) {
	store, _ := setupTestStore(t)

	a, _ := store.CreateTaskFrom("a")
	b, _ := store.CreateTaskFrom("b")
	c, _ := store.CreateTaskFrom("c")
	store.CreateTaskFrom("d")
	_, _ = store.MarkDone(a.UUID)
	_, _ = store.MarkDeleted(b.UUID)
	_, _ = store.MarkDone(c.UUID)
	_, _ = store.MarkCreated(c.UUID)
	store.EditTask(a.UUID, "a edited")

	assertPartition(t, store)
	views := store.Views()
	assert.Len(t, views.Created, 2)
	assert.Len(t, views.Done, 1)
	assert.Len(t, views.Deleted, 1)
}

func TestTasks_ReturnsCopies(t *testing.T) {
	store, _ := setupTestStore(t)
	task, _ := store.CreateTaskFrom("original")

	snapshot := store.Tasks()
	snapshot[0].Task = "mutated by caller"

	got, _ := store.Get(task.UUID)
	assert.Equal(t, "original", got.Task)
}

func TestReset_ClearsMemoryAndStorage(t *testing.T) {
	ctx := context.Background()
	store, repo := setupTestStore(t)
	store.CreateTaskFrom("a")
	store.CreateTaskFrom("b")

	require.NoError(t, store.Reset(ctx))

	assert.Empty(t, store.Tasks())
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDurableOrder_MatchesMemory(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, _ := store.CreateTaskFrom("concurrent")
			_, _ = store.MarkDone(task.UUID)
		}()
	}
	wg.Wait()
	require.NoError(t, store.Flush(ctx))

	inMemory := store.Tasks()
	require.NoError(t, store.LoadFromStore(ctx))
	assert.Equal(t, len(inMemory), len(store.Tasks()))
	for i, task := range store.Tasks() {
		assert.Equal(t, inMemory[i].UUID, task.UUID)
		assert.Equal(t, models.StatusDone, task.Status)
	}
}
