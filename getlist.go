package davkit

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gopatchy/jsrest"
	"github.com/vfaronov/httpheader"
)

func (api *API) getList(c *Collection, w http.ResponseWriter, r *http.Request, sendBody bool) error {
	ctx := r.Context()

	api.AddEventData(ctx, "operation", "list")
	api.AddEventData(ctx, "collection", c.Name())

	opts := parseGetOpts(r)

	neg, err := NegotiateContentTypes(opts.Accept, []string{"application/json"})
	if err != nil {
		return jsrest.Errorf(jsrest.ErrBadRequest, "Accept: %s (%w)", r.Header.Get("Accept"), err)
	}

	if _, ok := neg.Next(); !ok {
		return jsrest.Errorf(jsrest.ErrNotAcceptable, "Accept: %s (%w)", r.Header.Get("Accept"), ErrUnknownAcceptType)
	}

	list := c.Entries()

	etag, err := hashList(list)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrInternalServerError, "hash list failed (%w)", err)
	}

	w.Header().Set("Vary", "Accept")

	if httpheader.MatchWeak(opts.IfNoneMatch, httpheader.EntityTag{Opaque: etag}) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	if !sendBody {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", fmt.Sprintf("%q", etag))
		w.WriteHeader(http.StatusOK)

		return nil
	}

	objs := []any{}
	for _, entry := range list {
		objs = append(objs, entry)
	}

	err = jsrest.WriteList(w, objs, etag)
	if err != nil {
		return jsrest.Errorf(jsrest.ErrInternalServerError, "write list failed (%w)", err)
	}

	return nil
}

func hashList(list []*ListEntry) (string, error) {
	hash := sha256.New()
	enc := json.NewEncoder(hash)

	for _, entry := range list {
		err := enc.Encode(entry)
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
