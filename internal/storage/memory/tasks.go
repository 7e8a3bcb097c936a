// Package memory implements the task store as an in-process map. It backs
// the "memory" storage driver for local development and is the store used
// throughout the test suite. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ImranQ74/todo-phase2/internal/models"
	"github.com/ImranQ74/todo-phase2/internal/storage"
)

type taskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*models.Task
	nextID int64
}

func NewTaskStore() storage.Tasks {
	return &taskStore{
		tasks:  make(map[int64]*models.Task),
		nextID: 1,
	}
}

func (s *taskStore) Insert(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := &models.Task{
		ID:          s.nextID,
		ExternalID:  uuid.NewString(),
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: cloneString(task.Description),
		Completed:   task.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// The counter only ever moves forward, so ids are never reused
	// even after a delete.
	s.nextID++

	s.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

func (s *taskStore) FindByID(_ context.Context, id int64, ownerID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, storage.ErrTaskNotFound
	}

	return cloneTask(task), nil
}

func (s *taskStore) ListByOwner(_ context.Context, ownerID string, offset, limit uint64) ([]*models.Task, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, task)
		}
	}

	// Newest first; equal timestamps fall back to the higher id so the
	// ordering matches the durable driver.
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	if offset >= uint64(len(owned)) {
		return []*models.Task{}, total, nil
	}
	owned = owned[offset:]
	if limit < uint64(len(owned)) {
		owned = owned[:limit]
	}

	page := make([]*models.Task, len(owned))
	for i, task := range owned {
		page[i] = cloneTask(task)
	}
	return page, total, nil
}

func (s *taskStore) Update(_ context.Context, params storage.UpdateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[params.ID]
	if !ok || task.OwnerID != params.OwnerID {
		return nil, storage.ErrTaskNotFound
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = cloneString(params.Description)
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}
	task.UpdatedAt = time.Now()

	return cloneTask(task), nil
}

func (s *taskStore) ToggleComplete(_ context.Context, id int64, ownerID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, storage.ErrTaskNotFound
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()

	return cloneTask(task), nil
}

func (s *taskStore) Delete(_ context.Context, id int64, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return storage.ErrTaskNotFound
	}

	delete(s.tasks, id)
	return nil
}

func (s *taskStore) Close() {}

func cloneTask(task *models.Task) *models.Task {
	clone := *task
	clone.Description = cloneString(task.Description)
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
