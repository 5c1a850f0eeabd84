package hyper

const (
	MediaTypeJSON           = "application/json"
	MediaTypeFormURLEncoded = "application/x-www-form-urlencoded"
	MediaTypeTextPlain      = "text/plain"
	MediaTypeTextHTML       = "text/html"
)
