package hyper

import (
	"io"
	"net/http"
	"time"
)

// Action is a response mutation that has been recorded but not applied yet.
// The set of actions is closed, see the types below.
type Action interface {
	action()
}

type SetStatusAction struct {
	Status int
}

type SetHeaderAction struct {
	Name  string
	Value string
}

type SetCookieAction struct {
	Name    string
	Value   string
	Options CookieOptions
}

type ClearCookieAction struct {
	Name    string
	Options CookieOptions
}

type SetBodyAction struct {
	Body string
}

// SetSessionAction sets a session value. If Flash is true, the value is only readable once.
type SetSessionAction struct {
	Name  string
	Value string
	Flash bool
}

type ClearSessionAction struct {
	Name string
}

type EndResponseAction struct{}

type PipeStreamAction struct {
	Stream io.Reader
}

func (SetStatusAction) action()    {}
func (SetHeaderAction) action()    {}
func (SetCookieAction) action()    {}
func (ClearCookieAction) action()  {}
func (SetBodyAction) action()      {}
func (SetSessionAction) action()   {}
func (ClearSessionAction) action() {}
func (EndResponseAction) action()  {}
func (PipeStreamAction) action()   {}

// CookieOptions for [SetCookie] and [ClearCookie].
type CookieOptions struct {
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// cookie with the given name and value, ready for serializing into a Set-Cookie header.
func (o CookieOptions) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		Expires:  o.Expires,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
}

// actionList is a persistent list with the most recent action first.
// Lists are never modified, so a tail can be shared between connections.
type actionList struct {
	head Action
	tail *actionList
	len  int
}

func (l *actionList) cons(a Action) *actionList {
	n := 1
	if l != nil {
		n = l.len + 1
	}
	return &actionList{head: a, tail: l, len: n}
}

// inOrder returns the actions in the order they were issued, oldest first.
func (l *actionList) inOrder() []Action {
	if l == nil {
		return nil
	}
	actions := make([]Action, l.len)
	i := l.len - 1
	for n := l; n != nil; n = n.tail {
		actions[i] = n.head
		i--
	}
	return actions
}
