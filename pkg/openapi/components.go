package openapi

import "maps"

// NewComponents creates Components with the shared error schema and responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Human-readable failure message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    ResponseJSON("Invalid request", "Error"),
			"Unauthorized":  ResponseJSON("Credentials rejected", "Error"),
			"TooLarge":      ResponseJSON("Upload exceeds the configured limit", "Error"),
			"InternalError": ResponseJSON("Processing failed", "Error"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}
