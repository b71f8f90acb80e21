package provider

import (
	"testing"

	"noa/model"
)

func TestConvertToOllamaMessages(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "How many customers are there?"},
		{Role: model.RoleAssistant, Content: "Tool read_neo4j_cypher called"},
	}

	messages := ConvertToOllamaMessages("You answer graph questions.", history)

	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" || messages[0].Content != "You answer graph questions." {
		t.Errorf("unexpected system message: %+v", messages[0])
	}
	if messages[1].Role != "user" || messages[2].Role != "assistant" {
		t.Errorf("history roles not preserved: %q, %q", messages[1].Role, messages[2].Role)
	}
}

func TestConvertToOllamaMessagesNoSystem(t *testing.T) {
	messages := ConvertToOllamaMessages("", []model.Message{{Role: model.RoleUser, Content: "hi"}})
	if len(messages) != 1 || messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "question"},
		{Role: model.RoleAssistant, Content: "answer"},
		{Role: "tool", Content: "odd role"},
	}

	messages := ConvertToOpenAIMessages("system prompt", history)
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].OfSystem == nil {
		t.Error("first message should be a system message")
	}
	if messages[1].OfUser == nil {
		t.Error("second message should be a user message")
	}
	if messages[2].OfAssistant == nil {
		t.Error("third message should be an assistant message")
	}
	if messages[3].OfUser == nil {
		t.Error("unknown roles should degrade to user messages")
	}
}
