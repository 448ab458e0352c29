// Package notice carries the transient message shown after an action. It
// travels from the action to the next page in a short-lived cookie, so a
// link cannot make a page show text the console never produced.
package notice

import (
	"encoding/base64"
	"net/http"
	"strings"
)

type Level string

const (
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

// CookieName holds the pending notice between a redirect and the page it
// leads to.
const CookieName = "notice"

const flashMaxAge = 60

type Notice struct {
	Level   Level
	Message string
}

func Ok(msg string) Notice   { return Notice{Level: Success, Message: msg} }
func Warn(msg string) Notice { return Notice{Level: Warning, Message: msg} }
func Fail(msg string) Notice { return Notice{Level: Error, Message: msg} }

func (n Notice) Empty() bool { return n.Message == "" }

// Flash stores n for the next page. An empty notice stores nothing.
func Flash(w http.ResponseWriter, n Notice, secure bool) {
	if n.Empty() {
		return
	}
	raw := string(n.Level) + "\n" + n.Message
	set(w, base64.RawURLEncoding.EncodeToString([]byte(raw)), flashMaxAge, secure)
}

// Take returns the stored notice and removes it, so it shows once. A missing
// or unreadable cookie yields an empty notice; unknown levels fall back to
// success.
func Take(w http.ResponseWriter, r *http.Request, secure bool) Notice {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}
	}
	set(w, "", -1, secure)

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return Notice{}
	}
	level, msg, ok := strings.Cut(string(raw), "\n")
	if !ok {
		return Notice{}
	}
	n := Notice{Level: Level(level), Message: msg}
	switch n.Level {
	case Success, Warning, Error:
	default:
		n.Level = Success
	}
	return n
}

func set(w http.ResponseWriter, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
