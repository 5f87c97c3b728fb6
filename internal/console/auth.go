package console

import (
	"errors"
	"net/http"
	"strings"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
)

const consoleCookie = "stonepay_console"

// requireSession sends browsers without the console cookie of the current
// session to the sign-in page.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(consoleCookie)
		if err != nil || !s.Session.Authenticated() || c.Value == "" || c.Value != s.Session.ConsoleID() {
			http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

type signInPage struct {
	Email string
}

func (s *Server) signInForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "signin", signInPage{}, nil)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	fail := func(msg string) {
		s.render(w, r, http.StatusOK, "signin", signInPage{Email: email}, &Flash{Kind: FlashError, Message: msg})
	}
	if email == "" {
		fail("Email is required.")
		return
	}
	if password == "" {
		fail("Password is required.")
		return
	}

	consoleID, err := s.Client.SignIn(r.Context(), email, password)
	if err != nil {
		s.log.Error("Sign-in failed for %s: %v", email, err)
		msg := backend.ServerMessage(err)
		if msg == "" {
			msg = "Sign-in failed! Please try again."
		}
		fail(msg)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     consoleCookie,
		Value:    consoleID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.setFlash(w, FlashSuccess, "Sign in successful!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	s.Session.Expire(r.Context())
	http.SetCookie(w, &http.Cookie{Name: consoleCookie, Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.CookieSecure})
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// expired handles ErrSessionExpired from any dispatcher: the session has
// already been cleared by the client, so only the browser is redirected.
func (s *Server) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrSessionExpired) {
		return false
	}
	http.SetCookie(w, &http.Cookie{Name: consoleCookie, Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.CookieSecure})
	s.setFlash(w, FlashWarning, "Your session has expired. Please log in again.")
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
	return true
}

// failTo flashes err and redirects to target, unless the session expired.
func (s *Server) failTo(w http.ResponseWriter, r *http.Request, err error, target string) {
	if s.expired(w, r, err) {
		return
	}
	s.setFlash(w, FlashError, dispatch.MessageOf(err))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// fetchFlash turns a failed fetch into an inline error on the page being
// rendered. It reports false when the request was already redirected.
func (s *Server) fetchFlash(w http.ResponseWriter, r *http.Request, err error) (*Flash, bool) {
	if err == nil {
		return nil, true
	}
	if s.expired(w, r, err) {
		return nil, false
	}
	return &Flash{Kind: FlashError, Message: dispatch.MessageOf(err)}, true
}
