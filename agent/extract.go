package agent

import (
	"encoding/json"
	"strings"
)

// ToolCall is one tool invocation the model asked for.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ParseToolCall decides whether an assistant message is a tool call.
//
// The candidate is the substring from the first '{' to the last '}', parsed
// once, strictly. It must decode to an object carrying "tool_name"; an
// "arguments" member, when present, must itself be an object and defaults to
// empty. Anything else means the message is a final answer, not an error.
//
// Multiple JSON objects in one message defeat this: the first-to-last brace
// span covers them all and fails to parse as a single object.
func ParseToolCall(text string) (ToolCall, bool) {
	stripped := strings.TrimSpace(text)

	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start == -1 || end <= start {
		return ToolCall{}, false
	}
	candidate := stripped[start : end+1]

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return ToolCall{}, false
	}

	name, ok := obj["tool_name"].(string)
	if !ok || name == "" {
		return ToolCall{}, false
	}

	arguments := map[string]any{}
	if raw, present := obj["arguments"]; present {
		m, ok := raw.(map[string]any)
		if !ok {
			return ToolCall{}, false
		}
		arguments = m
	}

	return ToolCall{Name: name, Arguments: arguments}, true
}
