package davkit

import (
	"fmt"
	"net/http"

	"github.com/gopatchy/jsrest"
)

func (api *API) getObject(c *Collection, name string, w http.ResponseWriter, r *http.Request, sendBody bool) error {
	ctx := r.Context()

	api.AddEventData(ctx, "operation", "get")
	api.AddEventData(ctx, "collection", c.Name())
	api.AddEventData(ctx, "name", name)

	opts := parseGetOpts(r)

	avail, err := c.ContentTypes(name)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrNotFound, "get failed (%w)", err)
	}

	neg, err := NegotiateContentTypes(opts.Accept, avail)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrBadRequest, "Accept: %s (%w)", r.Header.Get("Accept"), err)
	}

	ct, ok := neg.Next()
	if !ok {
		return jsrest.Errorf(jsrest.ErrNotAcceptable, "Accept: %s (%w)", r.Header.Get("Accept"), ErrUnknownAcceptType)
	}

	member, err := c.Get(name, ct)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrNotFound, "get failed (%w)", err)
	}

	w.Header().Set("Vary", "Accept")

	if opts.ifNoneMatch(member.ETag, member.Generation) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("Content-Type", member.File.ContentType())
	w.Header().Set("ETag", fmt.Sprintf("%q", member.ETag))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(member.File.Content())))

	if !sendBody {
		w.WriteHeader(http.StatusOK)
		return nil
	}

	_, err = w.Write(member.File.Content())
	if err != nil {
		return jsrest.Errorf(jsrest.ErrInternalServerError, "write response failed (%w)", err)
	}

	return nil
}
