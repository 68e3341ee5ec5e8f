package web

import (
	"errors"
	"net/http"

	htmlrender "github.com/bnema/todos/internal/adapters/render/html"
	"github.com/bnema/todos/internal/application"
	"github.com/bnema/todos/internal/domain"
)

const (
	viewLists    = "lists"
	viewNewList  = "new_list"
	viewList     = "list"
	viewEditList = "edit_list"

	formListName  = "list_name"
	formTodo      = "todo"
	formCompleted = "completed"
	pathParamList = "id"
	pathParamTodo = "todo_id"

	listsPath = "/lists"
)

func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	session, flash, err := s.sessions.Take(r.Context(), s.sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.bindSession(w, r, session)

	s.render(w, r, http.StatusOK, viewLists, htmlrender.Page{
		Flash: flash,
		Lists: s.lists.Lists(session.State),
	})
}

func (s *Server) handleNewList(w http.ResponseWriter, r *http.Request) {
	session, flash, err := s.sessions.Take(r.Context(), s.sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.bindSession(w, r, session)

	s.render(w, r, http.StatusOK, viewNewList, htmlrender.Page{Flash: flash})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue(formListName)

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), application.NoticeListCreated, func(state *domain.SessionState) error {
		_, err := s.lists.CreateList(state, name)
		return err
	})
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		s.bindSession(w, r, session)
		s.render(w, r, http.StatusUnprocessableEntity, viewNewList, htmlrender.Page{
			Flash: domain.Flash{Error: validationErr.Error()},
			Name:  domain.NormalizeName(name),
		})
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listsPath)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	session, flash, err := s.sessions.Take(r.Context(), s.sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.bindSession(w, r, session)

	detail, err := s.lists.List(session.State, id)
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	s.render(w, r, http.StatusOK, viewList, htmlrender.Page{
		Flash: flash,
		List:  detail.List,
		Todos: detail.Todos,
	})
}

func (s *Server) handleEditList(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	session, flash, err := s.sessions.Take(r.Context(), s.sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.bindSession(w, r, session)

	detail, err := s.lists.List(session.State, id)
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	s.render(w, r, http.StatusOK, viewEditList, htmlrender.Page{
		Flash: flash,
		List:  detail.List,
		Name:  detail.List.Name,
	})
}

func (s *Server) handleRenameList(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}
	name := r.FormValue(formListName)

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), application.NoticeListUpdated, func(state *domain.SessionState) error {
		return s.lists.RenameList(state, id, name)
	})
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		s.listNotFound(w, r)
	case errors.As(err, &validationErr):
		s.bindSession(w, r, session)
		detail, lookupErr := s.lists.List(session.State, id)
		if lookupErr != nil {
			s.listNotFound(w, r)
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity, viewEditList, htmlrender.Page{
			Flash: domain.Flash{Error: validationErr.Error()},
			List:  detail.List,
			Name:  domain.NormalizeName(name),
		})
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listPath(id))
	}
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), application.NoticeListDeleted, func(state *domain.SessionState) error {
		return s.lists.DeleteList(state, id)
	})
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		s.listNotFound(w, r)
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listsPath)
	}
}

func (s *Server) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}
	name := r.FormValue(formTodo)

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), application.NoticeTodoAdded, func(state *domain.SessionState) error {
		_, err := s.lists.AddTodo(state, id, name)
		return err
	})
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		s.listNotFound(w, r)
	case errors.As(err, &validationErr):
		s.bindSession(w, r, session)
		detail, lookupErr := s.lists.List(session.State, id)
		if lookupErr != nil {
			s.listNotFound(w, r)
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity, viewList, htmlrender.Page{
			Flash: domain.Flash{Error: validationErr.Error()},
			List:  detail.List,
			Todos: detail.Todos,
			Name:  domain.NormalizeName(name),
		})
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listPath(id))
	}
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	s.mutateTodo(w, r, application.NoticeTodoDeleted, func(state *domain.SessionState, listID domain.ListID, todoID domain.TodoID) error {
		return s.lists.DeleteTodo(state, listID, todoID)
	})
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	completed := application.ParseCompleted(r.FormValue(formCompleted))
	s.mutateTodo(w, r, application.NoticeTodoUpdated, func(state *domain.SessionState, listID domain.ListID, todoID domain.TodoID) error {
		return s.lists.ToggleTodo(state, listID, todoID, completed)
	})
}

func (s *Server) handleCheckAll(w http.ResponseWriter, r *http.Request) {
	id, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), application.NoticeAllCompleted, func(state *domain.SessionState) error {
		return s.lists.CheckAllTodos(state, id)
	})
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		s.listNotFound(w, r)
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listPath(id))
	}
}

type todoMutation func(state *domain.SessionState, listID domain.ListID, todoID domain.TodoID) error

func (s *Server) mutateTodo(w http.ResponseWriter, r *http.Request, notice string, fn todoMutation) {
	listID, err := application.ParseListID(r.PathValue(pathParamList))
	if err != nil {
		s.listNotFound(w, r)
		return
	}
	todoID, err := application.ParseTodoID(r.PathValue(pathParamTodo))
	if err != nil {
		s.todoNotFound(w, r, listID)
		return
	}

	session, err := s.sessions.Apply(r.Context(), s.sessionID(r), notice, func(state *domain.SessionState) error {
		return fn(state, listID, todoID)
	})
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		s.listNotFound(w, r)
	case errors.Is(err, domain.ErrTodoNotFound):
		s.todoNotFound(w, r, listID)
	case err != nil:
		s.fail(w, r, err)
	default:
		s.bindSession(w, r, session)
		s.redirect(w, r, listPath(listID))
	}
}

func (s *Server) listNotFound(w http.ResponseWriter, r *http.Request) {
	s.notice(w, r, domain.Flash{Error: application.NoticeListNotFound}, listsPath)
}

func (s *Server) todoNotFound(w http.ResponseWriter, r *http.Request, listID domain.ListID) {
	s.notice(w, r, domain.Flash{Error: application.NoticeTodoNotFound}, listPath(listID))
}

func (s *Server) notice(w http.ResponseWriter, r *http.Request, flash domain.Flash, location string) {
	session, err := s.sessions.Notify(r.Context(), s.sessionID(r), flash)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.bindSession(w, r, session)
	s.redirect(w, r, location)
}
