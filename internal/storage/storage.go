package storage

import (
	"context"
	"errors"

	"github.com/ImranQ74/todo-phase2/internal/models"
)

// ErrTaskNotFound is returned when no task matches both the task id and the
// owner id. A task that exists but belongs to someone else is reported
// exactly the same way as a task that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Tasks is the durable task collection. Every lookup and mutation is keyed
// by the (id, ownerID) conjunction in a single statement, so the ownership
// check and the operation itself are one atomic unit.
type Tasks interface {
	// Insert assigns the id, external id and both timestamps,
	// persists the task and returns the stored record.
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)

	// FindByID returns the task matching both id and ownerID,
	// or ErrTaskNotFound.
	FindByID(ctx context.Context, id int64, ownerID string) (*models.Task, error)

	// ListByOwner returns one page of the owner's tasks ordered newest
	// first, plus the owner's total task count irrespective of the page
	// window.
	ListByOwner(ctx context.Context, ownerID string, offset, limit uint64) ([]*models.Task, int64, error)

	// Update applies the set fields of params to the matching task,
	// refreshes updated_at and returns the updated record,
	// or ErrTaskNotFound.
	Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// ToggleComplete negates the completed flag of the matching task,
	// refreshes updated_at and returns the updated record,
	// or ErrTaskNotFound.
	ToggleComplete(ctx context.Context, id int64, ownerID string) (*models.Task, error)

	// Delete permanently removes the matching task,
	// or returns ErrTaskNotFound.
	Delete(ctx context.Context, id int64, ownerID string) error

	Close()
}

// UpdateTaskParams carries a partial update. Each optional field is
// tri-state: a nil pointer leaves the column untouched, a non-nil pointer
// overwrites it, including overwriting with an empty string or false.
type UpdateTaskParams struct {
	ID          int64
	OwnerID     string
	Title       *string
	Description *string
	Completed   *bool
}
