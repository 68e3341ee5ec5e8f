package application

import (
	"fmt"

	"github.com/bnema/todos/internal/domain"
)

// Service implements list and todo operations on a caller-supplied session state.
// It never retains the state between calls.
type Service struct {
	rejectSameNameRename bool
}

type Option func(*Service)

// WithSameNameRenameRejected makes RenameList treat the list's own current name
// as a conflict, mirroring a uniqueness check that does not skip the renamed list.
func WithSameNameRenameRejected() Option {
	return func(s *Service) {
		s.rejectSameNameRename = true
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) CreateList(state *domain.SessionState, name string) (domain.List, error) {
	name = domain.NormalizeName(name)
	if err := state.ValidateListName(name, 0); err != nil {
		return domain.List{}, err
	}

	return state.AppendList(name).Clone(), nil
}

func (s *Service) RenameList(state *domain.SessionState, id domain.ListID, newName string) error {
	list, err := findList(state, id)
	if err != nil {
		return err
	}

	newName = domain.NormalizeName(newName)
	self := id
	if s.rejectSameNameRename {
		self = 0
	}
	if err := state.ValidateListName(newName, self); err != nil {
		return err
	}

	list.Name = newName
	return nil
}

func (s *Service) DeleteList(state *domain.SessionState, id domain.ListID) error {
	idx := state.ListIndex(id)
	if idx < 0 {
		return listNotFound(id)
	}

	state.Lists = append(state.Lists[:idx], state.Lists[idx+1:]...)
	return nil
}

func (s *Service) AddTodo(state *domain.SessionState, listID domain.ListID, name string) (domain.Todo, error) {
	list, err := findList(state, listID)
	if err != nil {
		return domain.Todo{}, err
	}

	name = domain.NormalizeName(name)
	if err := domain.ValidateTodoName(name); err != nil {
		return domain.Todo{}, err
	}

	return list.AddTodo(name), nil
}

func (s *Service) DeleteTodo(state *domain.SessionState, listID domain.ListID, todoID domain.TodoID) error {
	list, err := findList(state, listID)
	if err != nil {
		return err
	}

	idx := list.TodoIndex(todoID)
	if idx < 0 {
		return todoNotFound(listID, todoID)
	}

	list.Todos = append(list.Todos[:idx], list.Todos[idx+1:]...)
	return nil
}

func (s *Service) ToggleTodo(state *domain.SessionState, listID domain.ListID, todoID domain.TodoID, completed bool) error {
	list, err := findList(state, listID)
	if err != nil {
		return err
	}

	idx := list.TodoIndex(todoID)
	if idx < 0 {
		return todoNotFound(listID, todoID)
	}

	list.Todos[idx].Completed = completed
	return nil
}

func (s *Service) CheckAllTodos(state *domain.SessionState, listID domain.ListID) error {
	list, err := findList(state, listID)
	if err != nil {
		return err
	}

	for i := range list.Todos {
		list.Todos[i].Completed = true
	}

	return nil
}

// findList returns a pointer into state.Lists; it is invalidated by any append or delete.
func findList(state *domain.SessionState, id domain.ListID) (*domain.List, error) {
	idx := state.ListIndex(id)
	if idx < 0 {
		return nil, listNotFound(id)
	}

	return &state.Lists[idx], nil
}

func listNotFound(id domain.ListID) error {
	return fmt.Errorf("list %d: %w", id, domain.ErrListNotFound)
}

func todoNotFound(listID domain.ListID, todoID domain.TodoID) error {
	return fmt.Errorf("list %d todo %d: %w", listID, todoID, domain.ErrTodoNotFound)
}
