package davkit

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gopatchy/jsrest"
)

func (api *API) put(c *Collection, name string, w http.ResponseWriter, r *http.Request, _ bool) error {
	ctx := r.Context()

	api.AddEventData(ctx, "operation", "put")
	api.AddEventData(ctx, "collection", c.Name())
	api.AddEventData(ctx, "name", name)

	opts := parseUpdateOpts(r)

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrBadRequest, "read request failed (%w)", err)
	}

	member, created, err := c.Put(name, contentType, content, opts.IfMatch)

	switch {
	case errors.Is(err, ErrPreconditionFailed):
		return jsrest.Errorf(jsrest.ErrPreconditionFailed, "put failed (%w)", err)

	case errors.Is(err, ErrInvalidFileContents):
		return jsrest.Errorf(jsrest.ErrBadRequest, "put failed (%w)", err)

	case err != nil:
		return jsrest.Errorf(jsrest.ErrInternalServerError, "put failed (%w)", err)
	}

	w.Header().Set("ETag", fmt.Sprintf("%q", member.ETag))

	if created {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}

	return nil
}
