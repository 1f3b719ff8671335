package davkit

import (
	"errors"
	"net/http"

	"github.com/gopatchy/jsrest"
)

func (api *API) delete(c *Collection, name string, w http.ResponseWriter, r *http.Request, _ bool) error {
	ctx := r.Context()

	api.AddEventData(ctx, "operation", "delete")
	api.AddEventData(ctx, "collection", c.Name())
	api.AddEventData(ctx, "name", name)

	opts := parseUpdateOpts(r)

	err := c.Delete(name, opts.IfMatch)

	switch {
	case errors.Is(err, ErrNotFound):
		return jsrest.Errorf(jsrest.ErrNotFound, "delete failed (%w)", err)

	case errors.Is(err, ErrPreconditionFailed):
		return jsrest.Errorf(jsrest.ErrPreconditionFailed, "delete failed (%w)", err)

	case err != nil:
		return jsrest.Errorf(jsrest.ErrInternalServerError, "delete failed (%w)", err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
