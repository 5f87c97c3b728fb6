package console

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "stonepay_flash"

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashWarning FlashKind = "warning"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

func (s *Server) setFlash(w http.ResponseWriter, kind FlashKind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(kind) + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.CookieSecure})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok || msg == "" {
		return nil
	}
	switch FlashKind(kind) {
	case FlashSuccess, FlashError, FlashWarning:
		return &Flash{Kind: FlashKind(kind), Message: msg}
	}
	return nil
}
