package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ImranQ74/todo-phase2/internal/models"
	"github.com/ImranQ74/todo-phase2/internal/storage"
)

const maxTitleLength = 255

type taskServiceImpl struct {
	logger zerolog.Logger
	store  storage.Tasks
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Tasks,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	title, err := validateTitle(params.Title)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("owner_id", params.OwnerID).
			Msg("rejected task title")
		return nil, err
	}

	task, err := s.store.Insert(ctx, &models.Task{
		OwnerID:     params.OwnerID,
		Title:       title,
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("owner_id", task.OwnerID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) (*TaskList, error) {
	tasks, total, err := s.store.ListByOwner(ctx, params.OwnerID, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("owner_id", params.OwnerID).
		Msg("listed tasks")
	return &TaskList{
		Tasks: tasks,
		Total: total,
	}, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64, ownerID string) (*models.Task, error) {
	task, err := s.store.FindByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Title != nil {
		title, err := validateTitle(*params.Title)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("task_id", params.ID).
				Msg("rejected task title")
			return nil, err
		}
		params.Title = &title
	}

	if params.Title == nil && params.Description == nil && params.Completed == nil {
		// Nothing to apply, answer with the current row.
		return s.GetTask(ctx, params.ID, params.OwnerID)
	}

	task, err := s.store.Update(ctx, storage.UpdateTaskParams{
		ID:          params.ID,
		OwnerID:     params.OwnerID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
	})
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("owner_id", task.OwnerID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64, ownerID string) error {
	err := s.store.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Str("owner_id", ownerID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) ToggleTaskComplete(ctx context.Context, id int64, ownerID string) (*models.Task, error) {
	task, err := s.store.ToggleComplete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Bool("completed", task.Completed).
		Msg("toggled task completion")
	return task, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTaskTitleTooLong
	}

	return title, nil
}
