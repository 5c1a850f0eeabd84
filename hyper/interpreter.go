package hyper

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response materialized from a connection's actions.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       string
}

// Accumulator is the state of the fold in [Reduce].
type Accumulator struct {
	Status  int
	Headers http.Header
	Session Session
	// Body is nil until a body has been set.
	Body *string
}

// NewAccumulator with status 200, no headers, and no body.
func NewAccumulator(session Session) Accumulator {
	return Accumulator{
		Status:  http.StatusOK,
		Headers: http.Header{},
		Session: session,
	}
}

// Reduce the actions into acc, strictly in the order given.
// Headers are set, not added, so the last write for a name wins.
// Session mutations are applied to acc.Session directly.
func Reduce(actions []Action, acc Accumulator) Accumulator {
	for _, a := range actions {
		acc = step(acc, a)
	}
	return acc
}

func step(acc Accumulator, a Action) Accumulator {
	switch a := a.(type) {
	case SetStatusAction:
		acc.Status = a.Status
	case SetHeaderAction:
		acc.Headers.Set(a.Name, a.Value)
	case SetCookieAction:
		acc.Headers.Add("Set-Cookie", a.Options.cookie(a.Name, a.Value).String())
	case ClearCookieAction:
		opts := a.Options
		opts.MaxAge = -1
		acc.Headers.Add("Set-Cookie", opts.cookie(a.Name, "").String())
	case SetBodyAction:
		body := a.Body
		acc.Body = &body
	case SetSessionAction:
		if a.Flash {
			acc.Session.Flash(a.Name, a.Value)
		} else {
			acc.Session.Set(a.Name, a.Value)
		}
	case ClearSessionAction:
		acc.Session.Unset(a.Name)
	case PipeStreamAction, EndResponseAction:
		// The response is whatever has been accumulated.
	default:
		panic(fmt.Sprintf("unknown action %T", a))
	}
	return acc
}

// Interpret the actions of an ended connection into a [Response].
// Actions are stored most recent first, so they are reversed before replay.
func Interpret(c Connection[ResponseEnded]) Response {
	acc := Reduce(c.Actions(), NewAccumulator(c.session))

	var body string
	if acc.Body != nil {
		body = *acc.Body
	}

	return Response{
		StatusCode: acc.Status,
		Headers:    acc.Headers,
		Body:       body,
	}
}

// ErrorResponse for a failed pipeline: the error value serialized as JSON, with status 500.
// Values that cannot be serialized are formatted with [fmt.Sprint] and serialized as a JSON string.
func ErrorResponse(e any) Response {
	body, err := json.Marshal(e)
	if err != nil {
		body, _ = json.Marshal(fmt.Sprint(e))
	}

	return Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    http.Header{"Content-Type": {MediaTypeJSON}},
		Body:       string(body),
	}
}
