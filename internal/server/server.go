// Package server exposes a set of schemas over HTTP.
//
//	POST /schemas/{name}/validate  validate the JSON object in the body
//	GET  /schemas                  list the schema names
//	GET  /openapi.json             the OpenAPI document of every schema
//
// A valid object is echoed back with status 200. An invalid one gets status
// 422 and an [openapi.ViolationsBody].
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/internal/logger"
	"github.com/Gobd/objectvalidation/openapi"
)

// MaxBodySize bounds the request body of a validation call.
const MaxBodySize = 1 << 20

var (
	// ErrStart is wrapped around listen failures.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown is wrapped around failed graceful shutdowns.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)

// Handler serves validation requests for a fixed set of schemas.
type Handler struct {
	schemas map[string]ov.Schema
	opts    ov.Options
	log     *slog.Logger
	router  chi.Router
}

// New builds the handler. opts.Reporter is replaced per request by a
// reporter logging through log. A nil log discards.
func New(schemas map[string]ov.Schema, opts ov.Options, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	docs, err := openapi.DocsHandler(Document(schemas))
	if err != nil {
		return nil, fmt.Errorf("openapi document: %w", err)
	}

	h := &Handler{
		schemas: schemas,
		opts:    opts,
		log:     log.With(logger.Component("server")),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/schemas", h.list)
	r.Post("/schemas/{name}/validate", h.validate)
	r.Method(http.MethodGet, "/openapi.json", docs)
	h.router = r
	return h, nil
}

// Document describes every schema as a validation endpoint.
func Document(schemas map[string]ov.Schema) *openapi3.T {
	doc := openapi.DocBase("objectvalidate", "Validates loosely typed objects against schemas", "1.0.0")
	openapi.Get(doc, "/schemas", "listSchemas", openapi.Endpoint{
		Summary:  "List schema names",
		Response: []string{},
	})
	for _, name := range ov.SchemaNames(schemas) {
		openapi.Post(doc, "/schemas/"+name+"/validate", "validate_"+name, openapi.Endpoint{
			Summary:   "Validate an object against " + name,
			Request:   schemas[name],
			Response:  schemas[name],
			Validated: true,
		})
	}
	return doc
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ov.SchemaNames(h.schemas))
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s, ok := h.schemas[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("unknown schema %q", name)})
		return
	}

	obj, err := ov.Decode(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	log := h.log.With(
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("schema", name),
	)
	opts := h.opts
	opts.Reporter = ov.LogReporter(log)

	valid, err := ov.Validate(obj, s, opts)
	if err != nil {
		vs, _ := ov.AsViolations(err)
		body := openapi.ViolationsBody{Errors: map[string]string{}}
		for prop, e := range vs.Errors() {
			body.Errors[prop] = e.Error()
		}
		log.Info("object rejected", slog.Int("violations", len(vs)))
		writeJSON(w, http.StatusUnprocessableEntity, body)
		return
	}
	writeJSON(w, http.StatusOK, valid)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("listening", slog.String("addr", addr))

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Join(ErrShutdown, err)
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}
