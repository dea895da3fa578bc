package meta

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// OpenAPIPath is where discovery tools look for the document first.
const OpenAPIPath = "/openapi.json"

type Info struct {
	Title       string
	Description string
	Version     string
}

// LoadOpenAPI parses and validates the embedded document. Empty fields in
// info keep the embedded values.
func LoadOpenAPI(ctx context.Context, info Info) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	if info.Title != "" {
		doc.Info.Title = info.Title
	}
	if info.Description != "" {
		doc.Info.Description = info.Description
	}
	if info.Version != "" {
		doc.Info.Version = info.Version
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	return doc, nil
}

type OpenAPIHandler struct {
	doc *openapi3.T
}

func NewOpenAPIHandler(doc *openapi3.T) *OpenAPIHandler {
	return &OpenAPIHandler{
		doc: doc,
	}
}

type OpenAPIRequest struct{}

func (h OpenAPIHandler) Handle(ctx context.Context, req *OpenAPIRequest) (*openapi3.T, error) {
	return h.doc, nil
}
