package hyper

import (
	"io"
	"net/http"
	"net/url"
)

// Params are route parameters, passed through unmodified.
type Params = map[string]string

// Connection is the response so far, in phase S.
// It is a value: every operation returns a new Connection with one more recorded [Action],
// and never changes the one it was given.
type Connection[S Phase] struct {
	req     *http.Request
	params  Params
	body    any
	session Session
	actions *actionList
	ended   bool
}

// NewConnection for an incoming request, with an empty action list.
// The body is the already parsed request body, see the http package for parsing.
// If session is nil, an ephemeral in-memory session is used.
func NewConnection(r *http.Request, params Params, body any, session Session) Connection[StatusOpen] {
	if session == nil {
		session = NewMemorySession()
	}
	return Connection[StatusOpen]{
		req:     r,
		params:  params,
		body:    body,
		session: session,
	}
}

// chain returns a connection in phase O with the action a recorded in front of the ones in c.
func chain[O, I Phase](c Connection[I], a Action, ended bool) Connection[O] {
	return Connection[O]{
		req:     c.req,
		params:  c.params,
		body:    c.body,
		session: c.session,
		actions: c.actions.cons(a),
		ended:   ended,
	}
}

// transition to phase O without recording anything.
func transition[O, I Phase](c Connection[I]) Connection[O] {
	return Connection[O]{
		req:     c.req,
		params:  c.params,
		body:    c.body,
		session: c.session,
		actions: c.actions,
		ended:   c.ended,
	}
}

func SetStatus(c Connection[StatusOpen], status int) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, SetStatusAction{Status: status}, false)
}

func SetHeader(c Connection[HeadersOpen], name, value string) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, SetHeaderAction{Name: name, Value: value}, false)
}

func SetCookie(c Connection[HeadersOpen], name, value string, opts CookieOptions) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, SetCookieAction{Name: name, Value: value, Options: opts}, false)
}

func ClearCookie(c Connection[HeadersOpen], name string, opts CookieOptions) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, ClearCookieAction{Name: name, Options: opts}, false)
}

// SetSession value under name. If flash is true, the value can be read once on a later request.
func SetSession(c Connection[HeadersOpen], name, value string, flash bool) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, SetSessionAction{Name: name, Value: value, Flash: flash}, false)
}

func ClearSession(c Connection[HeadersOpen], name string) Connection[HeadersOpen] {
	return chain[HeadersOpen](c, ClearSessionAction{Name: name}, false)
}

// CloseHeaders so the body can be written. Nothing is recorded.
func CloseHeaders(c Connection[HeadersOpen]) Connection[BodyOpen] {
	return transition[BodyOpen](c)
}

func SetBody(c Connection[BodyOpen], body string) Connection[ResponseEnded] {
	return chain[ResponseEnded](c, SetBodyAction{Body: body}, true)
}

func PipeStream(c Connection[BodyOpen], stream io.Reader) Connection[ResponseEnded] {
	return chain[ResponseEnded](c, PipeStreamAction{Stream: stream}, true)
}

func EndResponse(c Connection[BodyOpen]) Connection[ResponseEnded] {
	return chain[ResponseEnded](c, EndResponseAction{}, true)
}

// Request the connection was created for.
func (c Connection[S]) Request() *http.Request {
	return c.req
}

// Header value from the request, or the empty string.
func (c Connection[S]) Header(name string) string {
	return c.req.Header.Get(name)
}

// Query parameters of the request URL.
func (c Connection[S]) Query() url.Values {
	return c.req.URL.Query()
}

// OriginalURL of the request, as received.
func (c Connection[S]) OriginalURL() string {
	if c.req.RequestURI != "" {
		return c.req.RequestURI
	}
	return c.req.URL.String()
}

func (c Connection[S]) Method() string {
	return c.req.Method
}

func (c Connection[S]) Params() Params {
	return c.params
}

// Body as parsed before the connection was created.
func (c Connection[S]) Body() any {
	return c.body
}

// Session value for name, or nil.
func (c Connection[S]) Session(name string) any {
	return c.session.Get(name)
}

// Ended reports whether a body, stream, or end has been recorded.
func (c Connection[S]) Ended() bool {
	return c.ended
}

// Actions recorded so far, oldest first.
// The returned slice is new on every call.
func (c Connection[S]) Actions() []Action {
	return c.actions.inOrder()
}
