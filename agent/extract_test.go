package agent

import "testing"

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		validate func(t *testing.T, call ToolCall)
	}{
		{
			name:   "bare tool call",
			input:  `{"tool_name": "read_neo4j_cypher", "arguments": {"query": "RETURN 1"}}`,
			wantOK: true,
			validate: func(t *testing.T, call ToolCall) {
				if call.Name != "read_neo4j_cypher" {
					t.Errorf("name = %q", call.Name)
				}
				if call.Arguments["query"] != "RETURN 1" {
					t.Errorf("arguments = %v", call.Arguments)
				}
			},
		},
		{
			name:   "tool call wrapped in prose",
			input:  "Sure, let me query the database:\n{\"tool_name\": \"get_neo4j_schema\", \"arguments\": {}}\nI'll wait for the result.",
			wantOK: true,
			validate: func(t *testing.T, call ToolCall) {
				if call.Name != "get_neo4j_schema" {
					t.Errorf("name = %q", call.Name)
				}
				if len(call.Arguments) != 0 {
					t.Errorf("arguments = %v", call.Arguments)
				}
			},
		},
		{
			name:   "missing arguments defaults to empty object",
			input:  `{"tool_name": "get_neo4j_schema"}`,
			wantOK: true,
			validate: func(t *testing.T, call ToolCall) {
				if call.Arguments == nil || len(call.Arguments) != 0 {
					t.Errorf("arguments = %v, want empty map", call.Arguments)
				}
			},
		},
		{
			name:   "no braces at all",
			input:  "The database has 42 customers.",
			wantOK: false,
		},
		{
			name:   "braces but invalid json",
			input:  `{"tool_name": "read_neo4j_cypher", "arguments": {"query": }`,
			wantOK: false,
		},
		{
			name:   "truncated json",
			input:  `{"tool_name": "read_neo4j_cypher", "arguments": {"query": "MATCH (n`,
			wantOK: false,
		},
		{
			name:   "object without tool_name",
			input:  `{"answer": "there are 42 customers"}`,
			wantOK: false,
		},
		{
			name:   "arguments not an object",
			input:  `{"tool_name": "read_neo4j_cypher", "arguments": "RETURN 1"}`,
			wantOK: false,
		},
		{
			name:   "arguments as array",
			input:  `{"tool_name": "read_neo4j_cypher", "arguments": ["RETURN 1"]}`,
			wantOK: false,
		},
		{
			name:   "tool_name not a string",
			input:  `{"tool_name": 7, "arguments": {}}`,
			wantOK: false,
		},
		{
			name:   "two json objects in one message",
			input:  `{"tool_name": "a", "arguments": {}} and also {"tool_name": "b", "arguments": {}}`,
			wantOK: false,
		},
		{
			name:   "closing brace before opening brace",
			input:  `} nonsense {`,
			wantOK: false,
		},
		{
			name:   "empty message",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := ParseToolCall(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (call %+v)", ok, tt.wantOK, call)
			}
			if tt.validate != nil {
				tt.validate(t, call)
			}
		})
	}
}
