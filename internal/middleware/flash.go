// Package middleware carries the one-shot flash messages the register shows
// across redirects (scan warnings, payment outcomes).
package middleware

import (
	"net/http"
	"net/url"
	"time"
)

const flashCookie = "flash"

// Flash stores a one-shot message in a cookie; the next rendered page pops it.
func Flash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlash returns the pending flash message, if any, and clears the cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return msg
}
