package config

import "github.com/invopop/jsonschema"

// Schema reflects NdagenConfig into a JSON schema keyed by the yaml field names.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&NdagenConfig{})
	schema.Title = "ndagen Configuration"
	schema.Description = "Configuration schema for ndagen agreement generation."
	return schema
}
