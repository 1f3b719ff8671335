package davkit_test

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"testing"

	"github.com/davkit/davkit"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	baseURL  string
	api      *davkit.API
	contacts *davkit.Collection
	notes    *davkit.Collection
	rst      *resty.Client
}

const testCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nUID:abc-123\r\nFN:Jane Doe\r\nTEL;TYPE=home:555-0101\r\nEND:VCARD\r\n"

func newTestAPI(t *testing.T) *testAPI {
	api := davkit.NewAPI()

	err := api.ListenSelfCert("[::]:0")
	require.NoError(t, err)

	return newTestAPIInt(t, api, "https")
}

func newTestAPIInsecure(t *testing.T) *testAPI {
	api := davkit.NewAPI()

	err := api.ListenInsecure("[::]:0")
	require.NoError(t, err)

	return newTestAPIInt(t, api, "http")
}

func newTestAPIInt(t *testing.T, api *davkit.API, scheme string) *testAPI {
	contacts := davkit.NewCollection("contacts")
	api.RegisterCollection(contacts)

	notes := davkit.NewCollection("notes")
	api.RegisterCollection(notes)

	api.SetAuthBasic(map[string]string{
		"foo": "$2a$10$ARCRvjao7aP7CU1Ck8rlqez3FkWwJZY1oe62sxGCA12fxeRcqj0K6", // abcd
	})

	api.SetAuthBearer(map[string]string{
		"abcd": "foo",
	})

	go func() {
		_ = api.Serve()
	}()

	ret := &testAPI{
		api:      api,
		contacts: contacts,
		notes:    notes,
		baseURL:  fmt.Sprintf("%s://[::1]:%d/", scheme, api.Addr().Port),
	}

	ret.rst = resty.New().
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}). //nolint:gosec
		SetBaseURL(ret.baseURL)

	if os.Getenv("DAVKIT_DEBUG") != "" {
		ret.rst.SetDebug(true)
	}

	return ret
}

func (ta *testAPI) r() *resty.Request {
	return ta.rst.R()
}

func (ta *testAPI) shutdown(t *testing.T) {
	err := ta.api.Shutdown(context.Background())
	require.NoError(t, err)

	ta.api.Close()
}
