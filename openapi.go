package davkit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gopatchy/jsrest"
	"golang.org/x/net/idna"
)

type (
	OpenAPI     = openapi3.T
	OpenAPIInfo = openapi3.Info
)

type openAPI struct {
	info *OpenAPIInfo
}

func (api *API) SetOpenAPIInfo(info *OpenAPIInfo) {
	api.openAPI.info = info
}

func (api *API) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	api.AddEventData(ctx, "operation", "openapi")

	err := api.handleOpenAPIInt(w, r)
	if err != nil {
		jsrest.WriteError(w, err)
	}
}

func (api *API) handleOpenAPIInt(w http.ResponseWriter, r *http.Request) error {
	t, err := api.buildOpenAPIGlobal(r)
	if err != nil {
		return err
	}

	for _, name := range api.names() {
		api.buildOpenAPICollection(t, api.registry[name])
	}

	js, err := t.MarshalJSON()
	if err != nil {
		return jsrest.Errorf(jsrest.ErrInternalServerError, "marshal JSON failed (%w)", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(js)

	return nil
}

func (api *API) buildOpenAPIGlobal(r *http.Request) (*openapi3.T, error) {
	baseURL, err := api.requestBaseURL(r)
	if err != nil {
		return nil, jsrest.Errorf(jsrest.ErrInternalServerError, "get base URL failed (%w)", err)
	}

	t := &openapi3.T{
		OpenAPI: "3.0.3",
		Paths:   openapi3.Paths{},
		Tags:    openapi3.Tags{},

		Servers: openapi3.Servers{
			&openapi3.Server{
				URL: baseURL,
			},
		},
	}

	if api.openAPI.info != nil {
		t.Info = api.openAPI.info
	} else {
		t.Info = &openapi3.Info{
			Title:   "davkit",
			Version: "unversioned",
		}
	}

	return t, nil
}

func (api *API) buildOpenAPICollection(t *openapi3.T, c *Collection) {
	t.Tags = append(t.Tags, &openapi3.Tag{
		Name: c.Name(),
	})

	nameParam := &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     "name",
			In:       "path",
			Required: true,
			Schema:   openapi3.NewStringSchema().NewRef(),
		},
	}

	t.Paths[fmt.Sprintf("/%s", c.Name())] = &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: fmt.Sprintf("list--%s", c.Name()),
			Tags:        []string{c.Name()},
			Responses: openapi3.Responses{
				"200": response("resource listing"),
				"304": response("listing not modified"),
				"406": response("no acceptable content type"),
			},
		},
	}

	t.Paths[fmt.Sprintf("/%s/{name}", c.Name())] = &openapi3.PathItem{
		Parameters: openapi3.Parameters{nameParam},

		Get: &openapi3.Operation{
			OperationID: fmt.Sprintf("get--%s", c.Name()),
			Tags:        []string{c.Name()},
			Responses: openapi3.Responses{
				"200": response("negotiated resource rendition"),
				"304": response("rendition not modified"),
				"400": response("malformed Accept header"),
				"404": response("resource not found"),
				"406": response("no acceptable content type"),
			},
		},

		Put: &openapi3.Operation{
			OperationID: fmt.Sprintf("put--%s", c.Name()),
			Tags:        []string{c.Name()},
			Responses: openapi3.Responses{
				"201": response("resource created"),
				"204": response("rendition replaced"),
				"400": response("invalid contents"),
				"412": response("If-Match precondition failed"),
			},
		},

		Delete: &openapi3.Operation{
			OperationID: fmt.Sprintf("delete--%s", c.Name()),
			Tags:        []string{c.Name()},
			Responses: openapi3.Responses{
				"204": response("resource deleted"),
				"404": response("resource not found"),
				"412": response("If-Match precondition failed"),
			},
		},
	}
}

func response(desc string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(desc),
	}
}

func (api *API) requestBaseURL(r *http.Request) (string, error) {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	host, err := idna.ToUnicode(r.Host)
	if err != nil {
		return "", jsrest.Errorf(jsrest.ErrInternalServerError, "unicode hostname conversion failed (%w)", err)
	}

	i := strings.Index(r.RequestURI, "/_openapi")
	if i == -1 {
		return "", jsrest.Errorf(jsrest.ErrInternalServerError, "missing /_openapi in URL")
	}

	path := r.RequestURI[:i]

	return fmt.Sprintf("%s://%s%s", scheme, host, path), nil
}
