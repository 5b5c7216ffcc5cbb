// Package openapi builds OpenAPI 3 documents whose request and response
// bodies are described by [objectvalidation.Schema] values. It also provides
// helpers for registering endpoints and serving the generated document.
//
// Use [DocBase] to create a base document, register endpoints with [Get] and
// [Post] (or [Register] for any other method), and serve it with
// [DocsHandlerMust]:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
//	    Request:  orderSchema,
//	    Response: orderSchema,
//	})
//	http.Handle("/openapi.json", openapi.DocsHandlerMust(doc))
//
// Bodies that are not a Schema are described by reflection through
// kin-openapi's openapi3gen.
package openapi
