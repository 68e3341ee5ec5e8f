package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/todos/internal/application"
	"github.com/bnema/todos/internal/domain"
	"github.com/bnema/todos/internal/logger"
)

// Renderer turns a view name and its bindings into a document.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

type Config struct {
	CookieName string
	Secret     []byte
	// Stylesheet is served at /static/app.css when set.
	Stylesheet []byte
}

type Server struct {
	lists      *application.Service
	sessions   *application.SessionService
	renderer   Renderer
	log        *logger.Logger
	cookies    cookieCodec
	cookieName string
	stylesheet []byte
}

func NewServer(cfg Config, lists *application.Service, sessions *application.SessionService, renderer Renderer, log *logger.Logger) (*Server, error) {
	if lists == nil || sessions == nil || renderer == nil || log == nil {
		return nil, errors.New("web: missing dependency")
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		return nil, errors.New("web: missing cookie name")
	}

	cookies, err := newCookieCodec(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	return &Server{
		lists:      lists,
		sessions:   sessions,
		renderer:   renderer,
		log:        log,
		cookies:    cookies,
		cookieName: cfg.CookieName,
		stylesheet: cfg.Stylesheet,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /static/app.css", s.handleCSS)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/lists", http.StatusFound)
	})
	mux.HandleFunc("GET /lists", s.handleLists)
	mux.HandleFunc("GET /lists/new", s.handleNewList)
	mux.HandleFunc("POST /lists", s.handleCreateList)
	mux.HandleFunc("GET /lists/{id}", s.handleList)
	mux.HandleFunc("GET /lists/{id}/edit", s.handleEditList)
	mux.HandleFunc("POST /lists/{id}", s.handleRenameList)
	mux.HandleFunc("POST /lists/{id}/destroy", s.handleDeleteList)
	mux.HandleFunc("POST /lists/{id}/check_all", s.handleCheckAll)
	mux.HandleFunc("POST /lists/{id}/todos", s.handleAddTodo)
	mux.HandleFunc("POST /lists/{id}/todos/{todo_id}", s.handleToggleTodo)
	mux.HandleFunc("POST /lists/{id}/todos/{todo_id}/destroy", s.handleDeleteTodo)

	return withSecurityHeaders(withRequestLog(s.log, withRecover(withFormLimit(mux))))
}

func (s *Server) handleCSS(w http.ResponseWriter, _ *http.Request) {
	if len(s.stylesheet) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(s.stylesheet)
}

// sessionID returns the id carried by a valid session cookie, or "".
func (s *Server) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return ""
	}

	id, ok := s.cookies.decode(cookie.Value)
	if !ok {
		requestLogger(r.Context()).Debug("ignoring session cookie with bad signature")
		return ""
	}

	return id
}

// bindSession issues a cookie when the request started a new session.
func (s *Server) bindSession(w http.ResponseWriter, r *http.Request, session domain.Session) {
	if session.ID == "" || session.ID == s.sessionID(r) {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    s.cookies.encode(session.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, view string, page any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := s.renderer.Render(w, view, page); err != nil {
		requestLogger(r.Context()).Error("render view", "view", view, "error", err)
	}
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestLogger(r.Context()).Error("handle request", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func listPath(id domain.ListID) string {
	return fmt.Sprintf("/lists/%d", id)
}
