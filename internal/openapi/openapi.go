// Package openapi assembles the per-route documentation fragments into one
// OpenAPI document. The document is descriptive metadata only; handlers
// never consult it.
package openapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
)

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

type Components struct {
	Schemas map[string]any `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

type Document struct {
	OpenAPI    string         `json:"openapi" yaml:"openapi"`
	Info       Info           `json:"info" yaml:"info"`
	Paths      map[string]any `json:"paths" yaml:"paths"`
	Components Components     `json:"components" yaml:"components"`
}

// Fragment is one route group's contribution: its path entries and the
// component schemas they reference.
type Fragment struct {
	Paths   map[string]any
	Schemas map[string]any
}

// Merge folds the fragments into a single document. Later fragments win on
// key collisions, though in practice every fragment owns distinct paths.
func Merge(info Info, fragments ...Fragment) Document {
	doc := Document{
		OpenAPI:    "3.0.3",
		Info:       info,
		Paths:      map[string]any{},
		Components: Components{Schemas: map[string]any{}},
	}
	for _, f := range fragments {
		for path, entry := range f.Paths {
			doc.Paths[path] = entry
		}
		for name, schema := range f.Schemas {
			doc.Components.Schemas[name] = schema
		}
	}
	return doc
}

// YAMLHandler serves the document at /openapi.yaml.
func YAMLHandler(doc Document) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := yaml.Marshal(doc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render openapi document"})
			return
		}
		c.Data(http.StatusOK, "application/yaml", data)
	}
}

// JSONHandler serves the document at /openapi.json.
func JSONHandler(doc Document) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	}
}
