package pdfops

import "github.com/JaimeStill/pdfdesk/pkg/openapi"

// Spec describes the processing endpoints relative to the API base path.
func Spec() map[string]*openapi.PathItem {
	pdf := openapi.BinaryResponse("Processed document as an attachment", ContentType)

	return map[string]*openapi.PathItem{
		"/merge": {
			Post: &openapi.Operation{
				Summary:     "Merge files into one PDF",
				Description: "Pages are emitted in part order. Image parts are placed on their own A4 page.",
				Tags:        []string{"pdf"},
				RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
					Type:     "object",
					Required: []string{"files"},
					Properties: map[string]*openapi.Schema{
						"files": {
							Type:        "array",
							Description: "PDF or image files, at least two",
							Items:       &openapi.Schema{Type: "string", Format: "binary"},
						},
					},
				}, true),
				Responses: map[int]*openapi.Response{
					200: pdf,
					400: openapi.ResponseRef("BadRequest"),
					413: openapi.ResponseRef("TooLarge"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
		"/unlock": {
			Post: &openapi.Operation{
				Summary: "Remove password protection from a PDF",
				Tags:    []string{"pdf"},
				RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
					Type:     "object",
					Required: []string{"file", "password"},
					Properties: map[string]*openapi.Schema{
						"file":     {Type: "string", Format: "binary"},
						"password": {Type: "string", Description: "User or owner password"},
					},
				}, true),
				Responses: map[int]*openapi.Response{
					200: pdf,
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
					413: openapi.ResponseRef("TooLarge"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
	}
}
