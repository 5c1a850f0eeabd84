package model

// Error is for errors in the middleware pipeline that are returned as values. See the constants below.
type Error string

const (
	ErrorMethodNotAllowed = Error("method not allowed")
	ErrorJSON             = Error("error encoding json")
	ErrorMissingParam     = Error("missing route parameter")
	ErrorMissingSession   = Error("missing session value")
	ErrorNotFound         = Error("not found")
	ErrorInvalidBody      = Error("invalid body")
)

// Error satisfies [error].
func (e Error) Error() string {
	return string(e)
}

var _ error = Error("")
