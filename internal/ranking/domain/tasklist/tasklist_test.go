package tasklist

import (
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"weekly", "sprint-12", "home_chores", "v1.2", strings.Repeat("a", MaxNameLength)}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "with space", "slash/name", "ünïcode", strings.Repeat("a", MaxNameLength+1)}
	for _, name := range invalid {
		err := ValidateName(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNew(t *testing.T) {
	t.Run("creates list", func(t *testing.T) {
		tasks := []task.Task{{Title: "a"}, {Title: "b"}}
		l, err := New("weekly", tasks)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, l.ID())
		assert.Equal(t, "weekly", l.Name())
		assert.Equal(t, 2, l.Len())
		assert.Equal(t, l.CreatedAt(), l.UpdatedAt())
	})

	t.Run("rejects bad name", func(t *testing.T) {
		l, err := New("bad name", nil)
		assert.Nil(t, l)
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestTaskList_Replace(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := Rehydrate(uuid.New(), "weekly", []task.Task{{Title: "old"}}, created, created)

	l.Replace([]task.Task{{Title: "new"}, {Title: "newer"}})

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "new", l.Tasks()[0].Title)
	assert.Equal(t, created, l.CreatedAt())
	assert.True(t, l.UpdatedAt().After(created))
}
