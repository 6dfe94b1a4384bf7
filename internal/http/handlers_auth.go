package http

import (
	"errors"
	"log/slog"
	"net/http"

	"budgetboard/internal/session"
)

type loginPage struct {
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.FromRequest(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", loginPage{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user := sanitizeInput(r.Form.Get("user"))
	sess, err := s.sessions.Login(user, r.Form.Get("password"))
	if err != nil {
		if !errors.Is(err, session.ErrInvalidCredentials) {
			slog.ErrorContext(r.Context(), "Login failed", "error", err)
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		slog.WarnContext(r.Context(), "Rejected login attempt", "user", user)
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, r, "login.html", loginPage{Error: "Wrong username or password."})
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "user", user)
	http.SetCookie(w, sess.Cookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.sessions.Logout(sess.Token)
	http.SetCookie(w, session.ExpiredCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
