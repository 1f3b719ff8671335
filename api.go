package davkit

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/gopatchy/jsrest"
	"github.com/gopatchy/potency"
	"github.com/gopatchy/selfcert"
	"github.com/julienschmidt/httprouter"
)

type API struct {
	router   *httprouter.Router
	potency  *potency.Potency
	registry map[string]*Collection

	listener net.Listener
	srv      *http.Server

	instanceID string

	openAPI openAPI

	prefix string

	stripPrefix RequestHook
	authBasic   RequestHook
	authBearer  RequestHook
	requestHook RequestHook

	eventState *eventState
}

type (
	RequestHook func(*http.Request, *API) (*http.Request, error)
	ContextKey  int
)

var ErrUnknownAcceptType = errors.New("unknown Accept type")

const (
	ContextAuthBasic ContextKey = iota
	ContextAuthBearer
	ContextEventData
)

func NewAPI() *API {
	router := httprouter.New()

	api := &API{
		router:     router,
		potency:    potency.NewPotency(router),
		registry:   map[string]*Collection{},
		instanceID: uniuri.New(),
		srv: &http.Server{
			ReadHeaderTimeout: 30 * time.Second,
		},
		eventState: newEventState(),
	}

	api.srv.Handler = api

	api.router.GET(
		"/_debug",
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) { api.handleDebug(w, r) },
	)

	api.router.GET(
		"/_openapi",
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) { api.handleOpenAPI(w, r) },
	)

	return api
}

func (api *API) RegisterCollection(c *Collection) {
	api.registry[c.Name()] = c
	api.registerHandlers(fmt.Sprintf("/%s", c.Name()), c)
}

func (api *API) SetStripPrefix(prefix string) {
	api.prefix = prefix

	api.stripPrefix = func(r *http.Request, _ *API) (*http.Request, error) {
		if !strings.HasPrefix(r.URL.Path, prefix) {
			return nil, jsrest.Errorf(jsrest.ErrNotFound, "not found")
		}

		r.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)

		return r, nil
	}
}

func (api *API) SetRequestHook(hook RequestHook) {
	api.requestHook = hook
}

func (api *API) Handle(method, path string, handler httprouter.Handle) {
	api.router.Handle(method, path, handler)
}

func (api *API) Handler(method, path string, handler http.Handler) {
	api.router.Handler(method, path, handler)
}

func (api *API) HandlerFunc(method, path string, handler http.HandlerFunc) {
	api.router.HandlerFunc(method, path, handler)
}

func (api *API) ListenSelfCert(bind string) error {
	tlsConfig, err := selfcert.NewTLSConfigFromHostPort(bind)
	if err != nil {
		return err
	}

	api.listener, err = tls.Listen("tcp", bind, tlsConfig)
	if err != nil {
		return err
	}

	return nil
}

func (api *API) ListenTLS(bind, certFile, keyFile string) error {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return err
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
		NextProtos:   []string{"h2"},
	}

	api.listener, err = tls.Listen("tcp", bind, cfg)
	if err != nil {
		return err
	}

	return nil
}

func (api *API) ListenInsecure(bind string) error {
	var err error

	api.listener, err = net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	return nil
}

func (api *API) Addr() *net.TCPAddr {
	return api.listener.Addr().(*net.TCPAddr)
}

func (api *API) Serve() error {
	return api.srv.Serve(api.listener)
}

func (api *API) Shutdown(ctx context.Context) error {
	return api.srv.Shutdown(ctx)
}

func (api *API) Close() {
	api.closeEventTargets()
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r = r.WithContext(context.WithValue(r.Context(), ContextEventData, map[string]any{}))

	err := api.serveHTTP(w, r)
	if err != nil {
		jsrest.WriteError(w, err)
	}

	api.writeEvent(r.Context(), r, err, start)
}

func (api *API) serveHTTP(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	var err error

	if api.stripPrefix != nil {
		r, err = api.stripPrefix(r, api)
		if err != nil {
			return jsrest.Errorf(jsrest.ErrNotFound, "strip prefix failed (%w)", err)
		}
	}

	if api.authBasic != nil {
		r, err = api.authBasic(r, api)
		if err != nil {
			return jsrest.Errorf(jsrest.ErrUnauthorized, "basic authentication failed (%w)", err)
		}
	}

	if api.authBearer != nil {
		r, err = api.authBearer(r, api)
		if err != nil {
			return jsrest.Errorf(jsrest.ErrUnauthorized, "bearer authentication failed (%w)", err)
		}
	}

	if api.requestHook != nil {
		r, err = api.requestHook(r, api)
		if err != nil {
			return jsrest.Errorf(jsrest.ErrInternalServerError, "request hook failed (%w)", err)
		}
	}

	api.potency.ServeHTTP(w, r)

	return nil
}

func (api *API) registerHandlers(base string, c *Collection) {
	api.router.GET(
		base,
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			api.wrapError(api.getList, c, w, r, true)
		},
	)

	api.router.HEAD(
		base,
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			api.wrapError(api.getList, c, w, r, false)
		},
	)

	single := fmt.Sprintf("%s/:name", base)

	api.router.GET(
		single,
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			api.wrapErrorName(api.getObject, c, ps[0].Value, w, r, true)
		},
	)

	api.router.HEAD(
		single,
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			api.wrapErrorName(api.getObject, c, ps[0].Value, w, r, false)
		},
	)

	api.router.PUT(
		single,
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			api.wrapErrorName(api.put, c, ps[0].Value, w, r, true)
		},
	)

	api.router.DELETE(
		single,
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			api.wrapErrorName(api.delete, c, ps[0].Value, w, r, true)
		},
	)
}

func (api *API) wrapError(cb func(*Collection, http.ResponseWriter, *http.Request, bool) error, c *Collection, w http.ResponseWriter, r *http.Request, sendBody bool) {
	err := cb(c, w, r, sendBody)
	if err != nil {
		jsrest.WriteError(w, err)
	}
}

func (api *API) wrapErrorName(cb func(*Collection, string, http.ResponseWriter, *http.Request, bool) error, c *Collection, name string, w http.ResponseWriter, r *http.Request, sendBody bool) {
	err := cb(c, name, w, r, sendBody)
	if err != nil {
		jsrest.WriteError(w, err)
	}
}

func (api *API) names() []string {
	names := []string{}
	for name := range api.registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
