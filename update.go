package davkit

import (
	"net/http"
)

type UpdateOpts struct {
	// IfMatch is the raw If-Match header value; the collection evaluates
	// it with strong comparison.
	IfMatch string
}

func parseUpdateOpts(r *http.Request) *UpdateOpts {
	return &UpdateOpts{
		IfMatch: r.Header.Get("If-Match"),
	}
}
