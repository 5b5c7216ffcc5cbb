package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/openapi"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaRefForValue(t *testing.T) {
	ref, err := openapi.NewSchemaRefForValue(item)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"name", "price"}, ref.Value.Required)
	assert.NotNil(t, ref.Value.Properties["id"].Value.Not)

	ptr, err := openapi.NewSchemaRefForValue(&item)
	require.NoError(t, err)
	assert.Equal(t, ref.Value.Required, ptr.Value.Required)

	body, err := openapi.NewSchemaRefForValue(openapi.ViolationsBody{})
	require.NoError(t, err)
	assert.Contains(t, body.Value.Properties, "errors")
}

func TestNewRequest(t *testing.T) {
	_, err := openapi.NewRequest()
	require.Error(t, err)

	single, err := openapi.NewRequest(item)
	require.NoError(t, err)
	assert.Empty(t, single.Value.Content["application/json"].Schema.Value.OneOf)

	other := ov.Schema{ov.Prop("sku", ov.IsString, ov.AlwaysPresent)}
	both, err := openapi.NewRequest(item, other)
	require.NoError(t, err)
	assert.Len(t, both.Value.Content["application/json"].Schema.Value.OneOf, 2)
}

func TestNewResponse(t *testing.T) {
	_, err := openapi.NewResponse(nil)
	require.ErrorIs(t, err, openapi.ErrNoBodies)

	resps, err := openapi.NewResponse(map[string]openapi.Response{
		"204": {Desc: "No Content"},
		"200": {Desc: "OK", Bodies: []any{item, openapi.ViolationsBody{}}},
	})
	require.NoError(t, err)
	assert.Nil(t, resps.Value("204").Value.Content)
	assert.Len(t, resps.Value("200").Value.Content["application/json"].Schema.Value.OneOf, 2)
}

func TestRegisterValidatedKeepsResponses(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	responses := map[string]openapi.Response{
		"201": {Desc: "Created", Bodies: []any{item}},
	}
	err := openapi.Register(doc, http.MethodPut, "/items", "putItem", openapi.Endpoint{
		Request:   item,
		Responses: responses,
		Validated: true,
	})
	require.NoError(t, err)

	op := doc.Paths.Value("/items").Put
	assert.NotNil(t, op.Responses.Value("201"))
	assert.NotNil(t, op.Responses.Value(openapi.StatusInvalid))
	assert.Nil(t, op.Responses.Value("200"))
	assert.Len(t, responses, 1, "caller map must not change")
}

func TestRegisterSharesPath(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Get(doc, "/items", "listItems", openapi.Endpoint{Response: []string{}})
	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{Request: item})

	p := doc.Paths.Value("/items")
	require.NotNil(t, p.Get)
	require.NotNil(t, p.Post)
	assert.Nil(t, p.Post.Responses.Value("200"))
	assert.Equal(t, 1, doc.Paths.Len())
}

func TestDocsHandler(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{
		Request:   item,
		Response:  item,
		Validated: true,
	})

	h, err := openapi.DocsHandler(doc)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "3.0.3", got["openapi"])
	assert.Contains(t, got["paths"], "/items")
}

func TestDocsHandlerRejectsInvalidDocument(t *testing.T) {
	doc := openapi.DocBase("", "", "")
	_, err := openapi.DocsHandler(doc)
	require.Error(t, err)
	assert.Panics(t, func() { openapi.DocsHandlerMust(doc) })
}
