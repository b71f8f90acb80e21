package mcp

import (
	"encoding/json"
	"sort"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ToolSchema is the normalized, prompt-facing description of one tool.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]ParamSchema
}

// ParamSchema describes a single tool parameter.
type ParamSchema struct {
	Type        string
	Description string
	Required    bool
}

// ParameterNames returns the parameter names in a stable order.
func (s ToolSchema) ParameterNames() []string {
	names := make([]string, 0, len(s.Parameters))
	for name := range s.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConvertTools normalizes raw MCP tool descriptors into prompt-facing
// schemas. Missing descriptions and property metadata are tolerated.
func ConvertTools(mcpTools []mcptypes.Tool) []ToolSchema {
	schemas := make([]ToolSchema, 0, len(mcpTools))

	for _, mcpTool := range mcpTools {
		schema := ToolSchema{
			Name:        mcpTool.Name,
			Description: mcpTool.Description,
			Parameters:  convertProperties(mcpTool.InputSchema),
		}
		schemas = append(schemas, schema)
	}

	return schemas
}

// convertProperties flattens an input schema's properties into ParamSchema
// entries, marking required ones.
func convertProperties(inputSchema mcptypes.ToolInputSchema) map[string]ParamSchema {
	params := make(map[string]ParamSchema, len(inputSchema.Properties))

	required := make(map[string]bool, len(inputSchema.Required))
	for _, name := range inputSchema.Required {
		required[name] = true
	}

	for propName, propValue := range inputSchema.Properties {
		param := convertPropertyValue(propValue)
		param.Required = required[propName]
		params[propName] = param
	}

	return params
}

// convertPropertyValue extracts type and description from one JSON Schema
// property value.
func convertPropertyValue(propValue any) ParamSchema {
	param := ParamSchema{Type: "string"}

	propMap, ok := propValue.(map[string]any)
	if !ok {
		// Not a plain map, round-trip through JSON before giving up.
		bytes, err := json.Marshal(propValue)
		if err != nil {
			return param
		}
		var m map[string]any
		if err := json.Unmarshal(bytes, &m); err != nil {
			return param
		}
		propMap = m
	}

	// Type can be a string or a list of alternatives; take the first.
	if typeVal, ok := propMap["type"]; ok {
		switch t := typeVal.(type) {
		case string:
			param.Type = t
		case []string:
			if len(t) > 0 {
				param.Type = t[0]
			}
		case []any:
			for _, v := range t {
				if s, ok := v.(string); ok {
					param.Type = s
					break
				}
			}
		}
	}

	if desc, ok := propMap["description"].(string); ok {
		param.Description = desc
	}

	return param
}
