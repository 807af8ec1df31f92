package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockTaskListRepo is a mock implementation of tasklist.Repository.
type mockTaskListRepo struct {
	mock.Mock
}

func (m *mockTaskListRepo) Save(ctx context.Context, list *tasklist.TaskList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *mockTaskListRepo) FindByName(ctx context.Context, name string) (*tasklist.TaskList, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasklist.TaskList), args.Error(1)
}

func (m *mockTaskListRepo) List(ctx context.Context) ([]*tasklist.TaskList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasklist.TaskList), args.Error(1)
}

func (m *mockTaskListRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func TestGetTaskListHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		list, err := tasklist.New("weekly", []task.Task{{Title: "a"}, {Title: "b"}})
		require.NoError(t, err)
		repo := new(mockTaskListRepo)
		repo.On("FindByName", ctx, "weekly").Return(list, nil)

		dto, err := NewGetTaskListHandler(repo).Handle(ctx, GetTaskListQuery{Name: "weekly"})

		require.NoError(t, err)
		assert.Equal(t, list.ID(), dto.ID)
		assert.Equal(t, 2, dto.TaskCount)
		assert.Len(t, dto.Tasks, 2)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockTaskListRepo)
		repo.On("FindByName", ctx, "x").Return(nil, tasklist.ErrNotFound)

		_, err := NewGetTaskListHandler(repo).Handle(ctx, GetTaskListQuery{Name: "x"})

		assert.ErrorIs(t, err, tasklist.ErrNotFound)
	})

	t.Run("no store", func(t *testing.T) {
		_, err := NewGetTaskListHandler(nil).Handle(ctx, GetTaskListQuery{Name: "x"})
		assert.ErrorIs(t, err, tasklist.ErrUnavailable)
	})
}

func TestListTaskListsHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("summaries", func(t *testing.T) {
		a, _ := tasklist.New("alpha", []task.Task{{Title: "a"}})
		b, _ := tasklist.New("beta", nil)
		repo := new(mockTaskListRepo)
		repo.On("List", ctx).Return([]*tasklist.TaskList{a, b}, nil)

		dtos, err := NewListTaskListsHandler(repo).Handle(ctx)

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "alpha", dtos[0].Name)
		assert.Equal(t, 1, dtos[0].TaskCount)
		assert.Equal(t, 0, dtos[1].TaskCount)
	})

	t.Run("empty store", func(t *testing.T) {
		repo := new(mockTaskListRepo)
		repo.On("List", ctx).Return([]*tasklist.TaskList{}, nil)

		dtos, err := NewListTaskListsHandler(repo).Handle(ctx)

		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mockTaskListRepo)
		repo.On("List", ctx).Return(nil, errors.New("locked"))

		_, err := NewListTaskListsHandler(repo).Handle(ctx)

		assert.ErrorContains(t, err, "failed to list task lists: locked")
	})
}

func TestListStrategiesHandler_Handle(t *testing.T) {
	dto := NewListStrategiesHandler("deadline").Handle(context.Background())
	require.Len(t, dto.Strategies, 4)
	assert.Equal(t, scoring.StrategySmart, dto.Strategies[0].Name)
	assert.Equal(t, scoring.StrategyDeadline, dto.Default)

	dto = NewListStrategiesHandler("bogus").Handle(context.Background())
	assert.Equal(t, scoring.DefaultStrategy, dto.Default)
}
