package domain

import (
	"fmt"
	"slices"
)

type ListID int
type TodoID int

type Todo struct {
	ID        TodoID
	Name      string
	Completed bool
}

type List struct {
	ID    ListID
	Name  string
	Todos []Todo
	// LastTodoID is the highest todo id ever handed out in this list.
	LastTodoID TodoID
}

// IsComplete reports whether the list has at least one todo and every todo is done.
func (l List) IsComplete() bool {
	if len(l.Todos) == 0 {
		return false
	}

	for _, todo := range l.Todos {
		if !todo.Completed {
			return false
		}
	}

	return true
}

// CompleteClass returns the CSS class applied to finished lists.
func (l List) CompleteClass() string {
	if l.IsComplete() {
		return "complete"
	}

	return ""
}

func (l List) RemainingCount() int {
	remaining := 0
	for _, todo := range l.Todos {
		if !todo.Completed {
			remaining++
		}
	}

	return remaining
}

// RemainingSummary formats "<not completed> / <total>".
func (l List) RemainingSummary() string {
	return fmt.Sprintf("%d / %d", l.RemainingCount(), len(l.Todos))
}

func (l List) TodoIndex(id TodoID) int {
	return slices.IndexFunc(l.Todos, func(todo Todo) bool { return todo.ID == id })
}

func (l *List) nextTodoID() TodoID {
	next := l.LastTodoID
	for _, todo := range l.Todos {
		if todo.ID > next {
			next = todo.ID
		}
	}
	next++
	l.LastTodoID = next

	return next
}

// AddTodo appends an incomplete todo with a freshly allocated id.
func (l *List) AddTodo(name string) Todo {
	todo := Todo{ID: l.nextTodoID(), Name: name}
	l.Todos = append(l.Todos, todo)

	return todo
}

// Clone returns a copy that shares no slices with l.
func (l List) Clone() List {
	l.Todos = slices.Clone(l.Todos)
	return l
}

// SortListsForDisplay returns a copy of lists with incomplete lists first.
// Relative order inside each group is preserved.
func SortListsForDisplay(lists []List) []List {
	sorted := slices.Clone(lists)
	slices.SortStableFunc(sorted, func(a, b List) int {
		return completionRank(a.IsComplete()) - completionRank(b.IsComplete())
	})

	return sorted
}

// SortTodosForDisplay returns a copy of todos with incomplete todos first.
func SortTodosForDisplay(todos []Todo) []Todo {
	sorted := slices.Clone(todos)
	slices.SortStableFunc(sorted, func(a, b Todo) int {
		return completionRank(a.Completed) - completionRank(b.Completed)
	})

	return sorted
}

func completionRank(done bool) int {
	if done {
		return 1
	}

	return 0
}
