package davkit_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAPI(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t)
	defer ta.shutdown(t)

	resp, err := ta.r().
		Get("_openapi")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	body := resp.String()
	require.Contains(t, body, `"/contacts"`)
	require.Contains(t, body, "/contacts/{name}")
	require.Contains(t, body, "/notes/{name}")
}
