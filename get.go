package davkit

import (
	"fmt"
	"net/http"

	"github.com/vfaronov/httpheader"
)

type GetOpts struct {
	Accept      []MediaRange
	IfNoneMatch []httpheader.EntityTag
}

func parseGetOpts(r *http.Request) *GetOpts {
	accept := r.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}

	return &GetOpts{
		Accept:      ParseAccept(accept),
		IfNoneMatch: httpheader.IfNoneMatch(r.Header),
	}
}

// ifNoneMatch uses weak comparison; cache validation doesn't need byte
// equality.
func (opts *GetOpts) ifNoneMatch(etag string, generation int64) bool {
	gen := fmt.Sprintf("generation:%d", generation)

	return httpheader.MatchWeak(opts.IfNoneMatch, httpheader.EntityTag{Opaque: etag}) ||
		httpheader.MatchWeak(opts.IfNoneMatch, httpheader.EntityTag{Opaque: gen})
}
