package render

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
)

// Schema is the subset of JSON Schema draft-07 produced by GeometrySchema.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        any                `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// nullable lists the JSON types of a Go slice or map, which encode as null
// when nil.
func nullable(kind string) []string {
	return []string{kind, "null"}
}

// GeometrySchema derives the JSON schema of the WriteGeometry document from
// the dashboard types.
func GeometrySchema() ([]byte, error) {
	defs := make(map[string]*Schema)
	props, required := structToProperties(reflect.TypeOf(dashboard.Dashboard{}), defs)

	schema := &Schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		Title:       "commitlens dashboard geometry",
		Description: "Statistics, aggregates and chart geometry of one analysed commit set",
		Type:        "object",
		Properties:  props,
		Required:    required,
		Definitions: defs,
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}

func structToProperties(t reflect.Type, defs map[string]*Schema) (map[string]*Schema, []string) {
	props := make(map[string]*Schema)

	var required []string

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" || jsonTag == "" {
			continue
		}

		parts := strings.Split(jsonTag, ",")
		jsonName := parts[0]
		isOmitempty := len(parts) > 1 && parts[1] == "omitempty"

		props[jsonName] = typeToSchema(field.Type, defs)

		if !isOmitempty {
			required = append(required, jsonName)
		}
	}

	return props, required
}

func typeToSchema(t reflect.Type, defs map[string]*Schema) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Slice:
		return &Schema{Type: nullable("array"), Items: typeToSchema(t.Elem(), defs)}

	case reflect.Map:
		return &Schema{
			Type:        nullable("object"),
			Description: fmt.Sprintf("Map with %s keys and %s values", t.Key().Kind(), t.Elem().Kind()),
		}

	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return &Schema{Type: "string", Description: "RFC 3339 timestamp"}
		}

		defName := t.Name()
		if defName == "" {
			props, required := structToProperties(t, defs)

			return &Schema{Type: "object", Properties: props, Required: required}
		}

		if _, exists := defs[defName]; !exists {
			// Reserve the name first so recursive types terminate.
			defs[defName] = &Schema{Type: "object"}
			props, required := structToProperties(t, defs)
			defs[defName] = &Schema{Type: "object", Properties: props, Required: required}
		}

		return &Schema{Ref: "#/definitions/" + defName}

	case reflect.Pointer:
		return typeToSchema(t.Elem(), defs)

	default:
		return &Schema{}
	}
}
