package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/elnormous/contenttype"
	"maragu.dev/errors"

	"maragu.dev/hyperglue/hyper"
)

// MaxBodySize of requests read by [ReadBody], in bytes.
const MaxBodySize = 1 << 20

var (
	jsonMediaType = contenttype.NewMediaType(hyper.MediaTypeJSON)
	formMediaType = contenttype.NewMediaType(hyper.MediaTypeFormURLEncoded)
)

// ReadBody of r, decoded by its Content-Type.
// GET and HEAD requests have no body. JSON is decoded into an any, forms into a map[string]string
// where the last value of a repeated key wins, and everything else is returned as a string.
// Bodies larger than [MaxBodySize] are an error.
func ReadBody(r *http.Request) (any, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Body == nil {
		return nil, nil
	}

	b, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "error reading request body")
	}

	ctype, err := contenttype.GetMediaType(r)
	if err != nil {
		return string(b), nil
	}

	switch {
	case ctype.Matches(jsonMediaType):
		if len(b) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, errors.Wrap(err, "error decoding json body")
		}
		return v, nil

	case ctype.Matches(formMediaType):
		values, err := url.ParseQuery(string(b))
		if err != nil {
			return nil, errors.Wrap(err, "error decoding form body")
		}
		form := map[string]string{}
		for k, vs := range values {
			form[k] = vs[len(vs)-1]
		}
		return form, nil

	default:
		return string(b), nil
	}
}
