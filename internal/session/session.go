package session

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	identityCookie = "player_id"
	nameCookie     = "player_name"
)

// Session is the per-connection context carried into every command:
// identity, display name and the room binding. It replaces any notion of
// ambient per-page state; handlers derive one from the request and pass it
// down explicitly.
type Session struct {
	Identity string
	Name     string
	RoomCode string
}

// FromRequest resolves the caller's session from cookies. Identity may be
// empty when the caller has never been issued one.
func FromRequest(r *http.Request) Session {
	s := Session{}
	if c, err := r.Cookie(identityCookie); err == nil {
		s.Identity = c.Value
	}
	if c, err := r.Cookie(nameCookie); err == nil {
		s.Name = c.Value
	}
	return s
}

// Ensure issues an identity (and optionally a display name) when the
// request carries none, writing the cookies on the response.
func Ensure(w http.ResponseWriter, r *http.Request, name string) Session {
	s := FromRequest(r)
	if s.Identity == "" {
		s.Identity = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     identityCookie,
			Value:    s.Identity,
			Path:     "/",
			HttpOnly: true,
		})
	}
	if name != "" && name != s.Name {
		s.Name = name
		http.SetCookie(w, &http.Cookie{
			Name:  nameCookie,
			Value: name,
			Path:  "/",
		})
	}
	if s.Name == "" {
		s.Name = "Player"
	}
	return s
}
