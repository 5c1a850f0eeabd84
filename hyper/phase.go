package hyper

// StatusOpen is the phase before the status code has been set.
type StatusOpen struct{}

// HeadersOpen is the phase where headers, cookies, and session values can be set.
type HeadersOpen struct{}

// BodyOpen is the phase after the headers are closed, where the body can be written.
type BodyOpen struct{}

// ResponseEnded is the terminal phase.
type ResponseEnded struct{}

// Phase is satisfied by the phase markers only.
type Phase interface {
	StatusOpen | HeadersOpen | BodyOpen | ResponseEnded
}
