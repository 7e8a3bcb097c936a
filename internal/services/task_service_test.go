package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ImranQ74/todo-phase2/internal/storage/memory"
)

func newTestTaskService() TaskService {
	return NewTaskService(zerolog.Nop(), memory.NewTaskStore())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestTaskService_CreateTask(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskParams{
		OwnerID: "u1",
		Title:   "  Buy milk  ",
	})
	require.NoError(t, err)

	require.Equal(t, "Buy milk", task.Title, "title is trimmed")
	require.Equal(t, "u1", task.OwnerID)
	require.False(t, task.Completed)
	require.Nil(t, task.Description, "absent description stays absent")
	require.NotZero(t, task.ID)
	require.NotEmpty(t, task.ExternalID)
	require.False(t, task.UpdatedAt.Before(task.CreatedAt))
}

func TestTaskService_CreateTask_TitleValidation(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "empty", title: "", wantErr: ErrEmptyTaskTitle},
		{name: "whitespace only", title: "   \t\n", wantErr: ErrEmptyTaskTitle},
		{name: "too long", title: strings.Repeat("x", 256), wantErr: ErrTaskTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, CreateTaskParams{
				OwnerID: "u1",
				Title:   tt.title,
			})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 255 characters is still fine.
	_, err := svc.CreateTask(ctx, CreateTaskParams{
		OwnerID: "u1",
		Title:   strings.Repeat("x", 255),
	})
	require.NoError(t, err)
}

func TestTaskService_ListTasks_Pagination(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	titles := []string{"one", "two", "three", "four", "five"}
	for _, title := range titles {
		_, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: title})
		require.NoError(t, err)
	}

	first, err := svc.ListTasks(ctx, ListTasksParams{OwnerID: "u1", Offset: 0, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Tasks, 2)
	require.EqualValues(t, 5, first.Total)

	// Newest first.
	require.Equal(t, "five", first.Tasks[0].Title)
	require.Equal(t, "four", first.Tasks[1].Title)

	second, err := svc.ListTasks(ctx, ListTasksParams{OwnerID: "u1", Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second.Tasks, 2)
	require.EqualValues(t, 5, second.Total)

	for _, a := range first.Tasks {
		for _, b := range second.Tasks {
			require.NotEqual(t, a.ID, b.ID, "pages must be disjoint")
		}
	}
}

func TestTaskService_ListTasks_ZeroLimit(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "a"})
	require.NoError(t, err)

	// An explicit zero limit is taken literally: an empty page, with the
	// total still counting every task.
	list, err := svc.ListTasks(ctx, ListTasksParams{OwnerID: "u1", Limit: 0})
	require.NoError(t, err)
	require.Empty(t, list.Tasks)
	require.EqualValues(t, 1, list.Total)
}

func TestTaskService_ListTasks_Empty(t *testing.T) {
	svc := newTestTaskService()

	list, err := svc.ListTasks(context.Background(), ListTasksParams{OwnerID: "nobody", Limit: 10})
	require.NoError(t, err)
	require.Empty(t, list.Tasks)
	require.EqualValues(t, 0, list.Total)
}

func TestTaskService_UpdateTask_Partial(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		OwnerID:     "u1",
		Title:       "A",
		Description: strPtr("B"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, UpdateTaskParams{
		ID:        created.ID,
		OwnerID:   "u1",
		Completed: boolPtr(true),
	})
	require.NoError(t, err)

	require.Equal(t, "A", updated.Title, "untouched field unchanged")
	require.NotNil(t, updated.Description)
	require.Equal(t, "B", *updated.Description, "untouched field unchanged")
	require.True(t, updated.Completed)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestTaskService_UpdateTask_SetDescriptionToEmpty(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		OwnerID:     "u1",
		Title:       "A",
		Description: strPtr("B"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, UpdateTaskParams{
		ID:          created.ID,
		OwnerID:     "u1",
		Description: strPtr(""),
	})
	require.NoError(t, err)

	// Explicitly set to empty, which is not the same as leaving it alone.
	require.NotNil(t, updated.Description)
	require.Equal(t, "", *updated.Description)
}

func TestTaskService_UpdateTask_EmptyTitle(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "A"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, UpdateTaskParams{
		ID:      created.ID,
		OwnerID: "u1",
		Title:   strPtr("   "),
	})
	require.ErrorIs(t, err, ErrEmptyTaskTitle)

	// The failed update left the task alone.
	task, err := svc.GetTask(ctx, created.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, "A", task.Title)
}

func TestTaskService_UpdateTask_NoFields(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "A"})
	require.NoError(t, err)

	task, err := svc.UpdateTask(ctx, UpdateTaskParams{ID: created.ID, OwnerID: "u1"})
	require.NoError(t, err)
	require.Equal(t, created.ID, task.ID)
	require.Equal(t, "A", task.Title)
}

func TestTaskService_ToggleTaskComplete(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "A"})
	require.NoError(t, err)
	require.False(t, created.Completed)

	toggled, err := svc.ToggleTaskComplete(ctx, created.ID, "u1")
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	// Toggling twice restores the original value.
	toggled, err = svc.ToggleTaskComplete(ctx, created.ID, "u1")
	require.NoError(t, err)
	require.False(t, toggled.Completed)
}

func TestTaskService_DeleteTask_Idempotence(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID, "u1"))

	err = svc.DeleteTask(ctx, created.ID, "u1")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.GetTask(ctx, created.ID, "u1")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskParams{OwnerID: "u1", Title: "private"})
	require.NoError(t, err)

	// Every operation from another identity reports not found,
	// never partial data.
	_, err = svc.GetTask(ctx, created.ID, "u2")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.UpdateTask(ctx, UpdateTaskParams{
		ID:      created.ID,
		OwnerID: "u2",
		Title:   strPtr("stolen"),
	})
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.ToggleTaskComplete(ctx, created.ID, "u2")
	require.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(ctx, created.ID, "u2")
	require.ErrorIs(t, err, ErrTaskNotFound)

	// The owner still sees the task intact.
	task, err := svc.GetTask(ctx, created.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, "private", task.Title)
	require.False(t, task.Completed)

	list, err := svc.ListTasks(ctx, ListTasksParams{OwnerID: "u2"})
	require.NoError(t, err)
	require.Empty(t, list.Tasks)
	require.EqualValues(t, 0, list.Total)
}
