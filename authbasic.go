package davkit

import (
	"context"
	"net/http"
	"strings"

	"github.com/gopatchy/header"
	"github.com/gopatchy/jsrest"
	"golang.org/x/crypto/bcrypt"
)

// SetAuthBasic enables HTTP basic authentication against a map of username
// to bcrypt password hash. The authenticated username is stored in the
// request context under ContextAuthBasic.
func (api *API) SetAuthBasic(users map[string]string) {
	api.authBasic = func(r *http.Request, _ *API) (*http.Request, error) {
		scheme, val := header.ParseAuthorization(r)

		if strings.ToLower(scheme) != "basic" {
			return r, nil
		}

		reqUser, reqPass, err := header.ParseBasic(val)
		if err != nil {
			return nil, jsrest.Errorf(jsrest.ErrBadRequest, "Authorization Basic data parsing failed (%w)", err)
		}

		hash, ok := users[reqUser]
		if !ok {
			return nil, jsrest.Errorf(jsrest.ErrUnauthorized, "user not found")
		}

		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(reqPass))
		if err != nil {
			return nil, jsrest.Errorf(jsrest.ErrUnauthorized, "user password mismatch (%w)", err)
		}

		return r.WithContext(context.WithValue(r.Context(), ContextAuthBasic, reqUser)), nil
	}
}
