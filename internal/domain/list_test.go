package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIsComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		todos []Todo
		want  bool
	}{
		{name: "no todos", todos: nil, want: false},
		{name: "one open", todos: []Todo{{ID: 1, Name: "milk"}}, want: false},
		{name: "mixed", todos: []Todo{{ID: 1, Completed: true}, {ID: 2}}, want: false},
		{name: "all done", todos: []Todo{{ID: 1, Completed: true}, {ID: 2, Completed: true}}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			list := List{ID: 1, Name: "groceries", Todos: tc.todos}
			assert.Equal(t, tc.want, list.IsComplete())
		})
	}
}

func TestListCompleteClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", List{}.CompleteClass())
	assert.Equal(t, "complete", List{Todos: []Todo{{ID: 1, Completed: true}}}.CompleteClass())
}

func TestListRemainingSummary(t *testing.T) {
	t.Parallel()

	list := List{Todos: []Todo{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b", Completed: true},
		{ID: 3, Name: "c"},
	}}

	assert.Equal(t, "2 / 3", list.RemainingSummary())
	assert.Equal(t, "0 / 0", List{}.RemainingSummary())
}

func TestListAddTodoAllocatesMonotonicIDs(t *testing.T) {
	t.Parallel()

	list := List{ID: 1, Name: "chores"}
	first := list.AddTodo("sweep")
	second := list.AddTodo("mop")
	require.Equal(t, TodoID(1), first.ID)
	require.Equal(t, TodoID(2), second.ID)

	list.Todos = list.Todos[:1]
	third := list.AddTodo("dust")
	assert.Equal(t, TodoID(3), third.ID, "a deleted highest id is not handed out again")
	assert.False(t, third.Completed)
}

func TestSortListsForDisplayIsStable(t *testing.T) {
	t.Parallel()

	done := []Todo{{ID: 1, Completed: true}}
	lists := []List{
		{ID: 1, Name: "first complete", Todos: done},
		{ID: 2, Name: "incomplete"},
		{ID: 3, Name: "second complete", Todos: done},
	}

	sorted := SortListsForDisplay(lists)

	names := make([]string, 0, len(sorted))
	for _, list := range sorted {
		names = append(names, list.Name)
	}
	assert.Equal(t, []string{"incomplete", "first complete", "second complete"}, names)
	assert.Equal(t, ListID(1), lists[0].ID, "input is left untouched")
}

func TestSortTodosForDisplayIsStable(t *testing.T) {
	t.Parallel()

	todos := []Todo{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3, Completed: true},
		{ID: 4},
	}

	sorted := SortTodosForDisplay(todos)

	ids := make([]TodoID, 0, len(sorted))
	for _, todo := range sorted {
		ids = append(ids, todo.ID)
	}
	assert.Equal(t, []TodoID{2, 4, 1, 3}, ids)
}

func TestValidateListName(t *testing.T) {
	t.Parallel()

	state := SessionState{Lists: []List{{ID: 1, Name: "Work"}}}

	tests := []struct {
		name    string
		input   string
		self    ListID
		wantErr error
		message string
	}{
		{name: "empty", input: "", wantErr: ErrInvalidLength, message: "List name must be between 1 and 100 characters."},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: ErrInvalidLength},
		{name: "max length", input: strings.Repeat("a", 100)},
		{name: "multibyte counts characters", input: strings.Repeat("é", 100)},
		{name: "duplicate", input: "Work", wantErr: ErrDuplicateName, message: "List name must be unique."},
		{name: "self excluded", input: "Work", self: 1},
		{name: "unique", input: "Home"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := state.ValidateListName(tc.input, tc.self)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			if tc.message != "" {
				assert.Equal(t, tc.message, validationErr.Error())
			}
		})
	}
}

func TestValidateTodoName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTodoName("buy milk"))

	err := ValidateTodoName("")
	require.ErrorIs(t, err, ErrInvalidLength)
	assert.EqualError(t, err, "Todo name must be between 1 and 100 characters.")
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Groceries", NormalizeName("  Groceries \n"))
	assert.Equal(t, "", NormalizeName("   "))
}
