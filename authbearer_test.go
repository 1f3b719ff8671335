package davkit_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthBearer(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t)
	defer ta.shutdown(t)

	resp, err := ta.r().
		SetAuthToken("abcd").
		Get("contacts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestAuthBearerUnknownToken(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t)
	defer ta.shutdown(t)

	resp, err := ta.r().
		SetAuthToken("wxyz").
		Get("contacts")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}
