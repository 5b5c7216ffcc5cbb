package openapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// StatusInvalid is the response code of an object that violates its schema.
const StatusInvalid = "422"

// ErrNoBodies is returned when a request or response set is empty.
var ErrNoBodies = errors.New("no bodies given")

// Response describes an HTTP response with a description and the bodies it
// may carry. A body is an [objectvalidation.Schema] or any Go value.
type Response struct {
	Desc   string
	Bodies []any
}

// ViolationsBody is the body of a rejected object: violation messages keyed
// by property name.
type ViolationsBody struct {
	Errors map[string]string `json:"errors"`
}

// Endpoint describes a single API operation for [Register], [Get] and [Post].
type Endpoint struct {
	Summary     string
	Description string
	Request     any                 // single request body
	Requests    []any               // several request bodies, combined with oneOf
	Response    any                 // single 200 response body
	Responses   map[string]Response // keyed by status code, wins over Response
	// Validated adds a 422 response carrying a ViolationsBody.
	Validated bool
}

func (ep Endpoint) requests() []any {
	if len(ep.Requests) == 0 && ep.Request != nil {
		return []any{ep.Request}
	}
	return ep.Requests
}

// responses never modifies ep.Responses.
func (ep Endpoint) responses() map[string]Response {
	out := make(map[string]Response, len(ep.Responses)+1)
	for code, r := range ep.Responses {
		out[code] = r
	}
	if len(out) == 0 && ep.Response != nil {
		out["200"] = Response{Desc: "OK", Bodies: []any{ep.Response}}
	}
	if _, ok := out[StatusInvalid]; ep.Validated && !ok {
		out[StatusInvalid] = Response{Desc: "Object violates the schema", Bodies: []any{ViolationsBody{}}}
	}
	return out
}

// content describes bodies as JSON content, one schema or a oneOf of all.
func content(bodies []any) (openapi3.Content, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	refs := make(openapi3.SchemaRefs, 0, len(bodies))
	for _, b := range bodies {
		ref, err := NewSchemaRefForValue(b)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 1 {
		return openapi3.NewContentWithJSONSchemaRef(refs[0]), nil
	}
	return openapi3.NewContentWithJSONSchema(&openapi3.Schema{OneOf: refs}), nil
}

// NewRequest generates an OpenAPI request body from the given schemas or
// values. Several bodies are combined with oneOf.
func NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	c, err := content(vs)
	if err != nil {
		return nil, err
	}
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithContent(c)}, nil
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx"). A response without bodies has
// no content.
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, ErrNoBodies
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))
	for code, r := range vs {
		resp := openapi3.NewResponse().WithDescription(r.Desc)
		if len(r.Bodies) > 0 {
			c, err := content(r.Bodies)
			if err != nil {
				return nil, fmt.Errorf("response %s: %w", code, err)
			}
			resp.WithContent(c)
		}
		opts = append(opts, openapi3.WithName(code, resp))
	}
	return openapi3.NewResponses(opts...), nil
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// Register adds ep to doc as the method operation of path.
func Register(doc *openapi3.T, method, path, operationID string, ep Endpoint) error {
	op := openapi3.NewOperation()
	op.OperationID = operationID
	op.Summary = ep.Summary
	op.Description = ep.Description

	if reqs := ep.requests(); len(reqs) > 0 {
		body, err := NewRequest(reqs...)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		op.RequestBody = body
	}

	op.Responses = openapi3.NewResponses()
	if resps := ep.responses(); len(resps) > 0 {
		r, err := NewResponse(resps)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		op.Responses = r
	}

	doc.AddOperation(path, method, op)
	return nil
}

// Get registers a GET endpoint on doc. It panics on error.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	mustRegister(doc, http.MethodGet, path, operationID, ep)
}

// Post registers a POST endpoint on doc. It panics on error.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	mustRegister(doc, http.MethodPost, path, operationID, ep)
}

func mustRegister(doc *openapi3.T, method, path, operationID string, ep Endpoint) {
	if err := Register(doc, method, path, operationID, ep); err != nil {
		panic(err)
	}
}
