// Package hyper has a [Connection] that records response operations as [Action] values instead of
// writing to a response, and an interpreter that replays them into a [Response] once a middleware
// pipeline has finished.
//
// The phase a connection is in is part of its type, so operations can only be called in the part of
// the response lifecycle where they are legal:
//
//	StatusOpen -> HeadersOpen -> BodyOpen -> ResponseEnded
//
// Calling for example [SetHeader] on a Connection[StatusOpen] does not compile.
package hyper
