package provider

import (
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"noa/model"
)

// ConvertToOllamaMessages builds the Ollama message list: the system prompt
// first, then the conversation history. Timestamps are not preserved, the
// wire format has no field for them.
func ConvertToOllamaMessages(system string, history []model.Message) []api.Message {
	result := make([]api.Message, 0, len(history)+1)
	if system != "" {
		result = append(result, api.Message{Role: model.RoleSystem, Content: system})
	}
	for _, msg := range history {
		result = append(result, api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return result
}

// ConvertToOpenAIMessages builds the OpenAI message union list with the same
// system-first layout. Unknown roles degrade to user messages.
func ConvertToOpenAIMessages(system string, history []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if system != "" {
		result = append(result, openai.SystemMessage(system))
	}
	for _, msg := range history {
		switch msg.Role {
		case model.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
