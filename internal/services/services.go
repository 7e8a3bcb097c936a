package services

import (
	"context"
	"errors"

	"github.com/ImranQ74/todo-phase2/internal/models"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrMissingTokenSubject = errors.New("token has no subject")
	ErrTaskNotFound        = errors.New("task not found")
	ErrEmptyTaskTitle      = errors.New("task title is empty")
	ErrTaskTitleTooLong    = errors.New("task title is too long")
)

type AuthService interface {
	// VerifyToken checks the signature and validity window of a bearer
	// token and returns the user id from the subject claim.
	//
	// It returns ErrInvalidToken if the token is malformed, signed with
	// the wrong key or algorithm, or expired, and ErrMissingTokenSubject
	// if the token verifies but carries no subject.
	VerifyToken(token string) (string, error)
}

type TaskService interface {
	// CreateTask validates the title and stores a new incomplete task
	// owned by params.OwnerID.
	//
	// It returns ErrEmptyTaskTitle or ErrTaskTitleTooLong if the
	// trimmed title is not 1-255 characters.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns one page of the owner's tasks ordered newest
	// first, along with the owner's total task count. The limit is
	// taken literally: zero yields an empty page while the total still
	// counts every task. Defaulting an absent limit is the transport's
	// job.
	ListTasks(ctx context.Context, params ListTasksParams) (*TaskList, error)

	// GetTask returns the task matching both id and ownerID, or
	// ErrTaskNotFound. Tasks owned by other users are reported as
	// not found, never as forbidden.
	GetTask(ctx context.Context, id int64, ownerID string) (*models.Task, error)

	// UpdateTask applies the set fields of params to the task; nil
	// fields are left untouched. A supplied title is re-validated.
	//
	// It returns ErrTaskNotFound, ErrEmptyTaskTitle or
	// ErrTaskTitleTooLong.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask permanently removes the task matching both id and
	// ownerID, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64, ownerID string) error

	// ToggleTaskComplete flips the completed flag of the task matching
	// both id and ownerID, or returns ErrTaskNotFound.
	ToggleTaskComplete(ctx context.Context, id int64, ownerID string) (*models.Task, error)
}

type CreateTaskParams struct {
	OwnerID     string
	Title       string
	Description *string
}

type ListTasksParams struct {
	OwnerID string
	Offset  uint64
	Limit   uint64
}

type TaskList struct {
	Tasks []*models.Task
	Total int64
}

type UpdateTaskParams struct {
	ID          int64
	OwnerID     string
	Title       *string
	Description *string
	Completed   *bool
}
