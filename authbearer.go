package davkit

import (
	"context"
	"net/http"
	"strings"

	"github.com/gopatchy/header"
	"github.com/gopatchy/jsrest"
)

// SetAuthBearer enables bearer token authentication against a map of token
// to username. The authenticated username is stored in the request context
// under ContextAuthBearer.
func (api *API) SetAuthBearer(tokens map[string]string) {
	api.authBearer = func(r *http.Request, _ *API) (*http.Request, error) {
		scheme, val := header.ParseAuthorization(r)

		if strings.ToLower(scheme) != "bearer" {
			return r, nil
		}

		user, ok := tokens[val]
		if !ok {
			return nil, jsrest.Errorf(jsrest.ErrUnauthorized, "token not found")
		}

		return r.WithContext(context.WithValue(r.Context(), ContextAuthBearer, user)), nil
	}
}
