package llm

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects T into a strict JSON Schema: every property required
// and no additional properties, which is what strict structured output needs.
func SchemaFor[T any](name, description string) (*Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var def map[string]interface{}
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	delete(def, "$schema")
	delete(def, "$id")
	makeStrict(def)

	return &Schema{Name: name, Description: description, Definition: def}, nil
}

func makeStrict(node map[string]interface{}) {
	if t, ok := node["type"].(string); ok && t == "object" {
		node["additionalProperties"] = false
		if props, ok := node["properties"].(map[string]interface{}); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			sort.Strings(required)
			node["required"] = required
		}
	}
	if props, ok := node["properties"].(map[string]interface{}); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]interface{}); ok {
				makeStrict(pm)
			}
		}
	}
	if items, ok := node["items"].(map[string]interface{}); ok {
		makeStrict(items)
	}
}
